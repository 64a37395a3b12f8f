package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jask/gitreview/internal/database"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ReviewRepo handles reviews.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(ctx context.Context, rv Review) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO reviews(
	 id, title, base_branch, target_branch, base_sha, target_sha,
	 base_branch_exists, target_branch_exists, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		rv.ID, rv.Title, rv.BaseBranch, rv.TargetBranch, rv.BaseSHA, rv.TargetSHA,
		boolPtrToInt(rv.BaseBranchExists), boolPtrToInt(rv.TargetBranchExists),
		formatTime(rv.CreatedAt), formatTime(rv.UpdatedAt))
	return err
}

func (r *ReviewRepo) Get(ctx context.Context, id string) (Review, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, title, base_branch, target_branch, base_sha, target_sha,
	       base_branch_exists, target_branch_exists, created_at, updated_at
	FROM reviews WHERE id = ?`, id)
	rv, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return rv, err
}

func (r *ReviewRepo) List(ctx context.Context) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, title, base_branch, target_branch, base_sha, target_sha,
	       base_branch_exists, target_branch_exists, created_at, updated_at
	FROM reviews ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Delete removes the review and, in the same transaction, its comments and
// file views. Foreign keys cascade too; the explicit deletes keep the
// behavior independent of the connection's foreign_keys pragma.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE review_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM file_views WHERE review_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpdateBranchStatus persists drift detected by the branch status check.
// Nil pointers leave the corresponding column untouched.
func (r *ReviewRepo) UpdateBranchStatus(ctx context.Context, id string, baseSHA, targetSHA *string, baseExists, targetExists *bool, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE reviews SET
	 base_sha             = COALESCE(?, base_sha),
	 target_sha           = COALESCE(?, target_sha),
	 base_branch_exists   = COALESCE(?, base_branch_exists),
	 target_branch_exists = COALESCE(?, target_branch_exists),
	 updated_at           = ?
	WHERE id = ?`,
		baseSHA, targetSHA, boolPtrToInt(baseExists), boolPtrToInt(targetExists),
		formatTime(updatedAt), id)
	return err
}

// UpdateSHAs re-captures both SHAs, used by the refresh dialog.
func (r *ReviewRepo) UpdateSHAs(ctx context.Context, id string, baseSHA, targetSHA *string, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE reviews SET base_sha = ?, target_sha = ?, updated_at = ? WHERE id = ?`,
		baseSHA, targetSHA, formatTime(updatedAt), id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (Review, error) {
	var (
		rv                       Review
		baseExists, targetExists sql.NullInt64
		createdAt, updatedAt     string
	)
	err := row.Scan(&rv.ID, &rv.Title, &rv.BaseBranch, &rv.TargetBranch,
		&rv.BaseSHA, &rv.TargetSHA, &baseExists, &targetExists, &createdAt, &updatedAt)
	if err != nil {
		return Review{}, err
	}
	rv.BaseBranchExists = intToBoolPtr(baseExists)
	rv.TargetBranchExists = intToBoolPtr(targetExists)
	rv.CreatedAt = parseTime(createdAt)
	rv.UpdatedAt = parseTime(updatedAt)
	return rv, nil
}

func boolPtrToInt(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return int64(1)
	}
	return int64(0)
}

func intToBoolPtr(n sql.NullInt64) *bool {
	if !n.Valid {
		return nil
	}
	b := n.Int64 != 0
	return &b
}
