package repository

import (
	"context"
	"database/sql"
	"time"
)

// FileViewRepo handles the viewed-file markers of a review.
type FileViewRepo struct {
	db *sql.DB
}

func NewFileViewRepo(db *sql.DB) *FileViewRepo { return &FileViewRepo{db: db} }

// MarkViewed records a file as viewed. Marking an already-viewed file is a
// no-op (unique constraint, INSERT OR IGNORE).
func (r *FileViewRepo) MarkViewed(ctx context.Context, reviewID, filePath string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT OR IGNORE INTO file_views(review_id, file_path, created_at)
	VALUES(?, ?, ?)`, reviewID, filePath, formatTime(at))
	return err
}

// MarkUnviewed clears the viewed marker for a file.
func (r *FileViewRepo) MarkUnviewed(ctx context.Context, reviewID, filePath string) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM file_views WHERE review_id = ? AND file_path = ?`, reviewID, filePath)
	return err
}

// IsViewed reports whether a file is currently marked viewed.
func (r *FileViewRepo) IsViewed(ctx context.Context, reviewID, filePath string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM file_views WHERE review_id = ? AND file_path = ?`,
		reviewID, filePath).Scan(&n)
	return n > 0, err
}

// ViewedFiles returns the viewed file paths of a review in marking order.
func (r *FileViewRepo) ViewedFiles(ctx context.Context, reviewID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT file_path FROM file_views WHERE review_id = ? ORDER BY created_at, id`, reviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
