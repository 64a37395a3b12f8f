package repository

import (
	"context"
	"database/sql"
	"time"
)

// CommentRepo handles comments.
type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Insert(ctx context.Context, c Comment) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO comments(id, review_id, file_path, line_number, content, resolved, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`,
		c.ID, c.ReviewID, c.FilePath, c.LineNumber, c.Content, c.Resolved,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	return err
}

// ListForFile returns file-level comments (line_number IS NULL) for one file.
func (r *CommentRepo) ListForFile(ctx context.Context, reviewID, filePath string) ([]Comment, error) {
	return r.list(ctx, `
	SELECT id, review_id, file_path, line_number, content, resolved, created_at, updated_at
	FROM comments
	WHERE review_id = ? AND file_path = ? AND line_number IS NULL
	ORDER BY created_at, id`, reviewID, filePath)
}

// ListForLine returns comments attached to a specific line of a file.
func (r *CommentRepo) ListForLine(ctx context.Context, reviewID, filePath string, line int64) ([]Comment, error) {
	return r.list(ctx, `
	SELECT id, review_id, file_path, line_number, content, resolved, created_at, updated_at
	FROM comments
	WHERE review_id = ? AND file_path = ? AND line_number = ?
	ORDER BY created_at, id`, reviewID, filePath, line)
}

// ToggleResolved flips the resolved flag and returns the new value.
func (r *CommentRepo) ToggleResolved(ctx context.Context, id string, updatedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE comments SET resolved = NOT resolved, updated_at = ? WHERE id = ?`, formatTime(updatedAt), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}
	var resolved bool
	err = r.db.QueryRowContext(ctx, `SELECT resolved FROM comments WHERE id = ?`, id).Scan(&resolved)
	return resolved, err
}

// Counts aggregates comment indicators for every file of a review.
func (r *CommentRepo) Counts(ctx context.Context, reviewID string) (CommentCounts, error) {
	counts := CommentCounts{
		LinesWithComments: map[string][]int64{},
		LinesAllResolved:  map[string][]int64{},
	}

	rows, err := r.db.QueryContext(ctx, `
	SELECT file_path, line_number, COUNT(*), SUM(resolved)
	FROM comments
	WHERE review_id = ?
	GROUP BY file_path, line_number
	ORDER BY file_path, line_number`, reviewID)
	if err != nil {
		return CommentCounts{}, err
	}
	defer rows.Close()

	type fileAgg struct {
		total, resolved int64
		hasFileLevel    bool
	}
	perFile := map[string]*fileAgg{}
	var fileOrder []string

	for rows.Next() {
		var (
			path     string
			line     sql.NullInt64
			total    int64
			resolved int64
		)
		if err := rows.Scan(&path, &line, &total, &resolved); err != nil {
			return CommentCounts{}, err
		}
		agg := perFile[path]
		if agg == nil {
			agg = &fileAgg{}
			perFile[path] = agg
			fileOrder = append(fileOrder, path)
		}
		agg.total += total
		agg.resolved += resolved
		if !line.Valid {
			agg.hasFileLevel = true
			continue
		}
		counts.LinesWithComments[path] = append(counts.LinesWithComments[path], line.Int64)
		if resolved == total {
			counts.LinesAllResolved[path] = append(counts.LinesAllResolved[path], line.Int64)
		}
	}
	if err := rows.Err(); err != nil {
		return CommentCounts{}, err
	}

	for _, path := range fileOrder {
		agg := perFile[path]
		counts.FilesWithComments = append(counts.FilesWithComments, path)
		if agg.hasFileLevel {
			counts.FilesWithFileComments = append(counts.FilesWithFileComments, path)
		}
		if agg.resolved == agg.total {
			counts.FilesAllResolved = append(counts.FilesAllResolved, path)
		}
	}
	return counts, nil
}

func (r *CommentRepo) list(ctx context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		var (
			c                    Comment
			line                 sql.NullInt64
			createdAt, updatedAt string
		)
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.FilePath, &line, &c.Content, &c.Resolved, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if line.Valid {
			v := line.Int64
			c.LineNumber = &v
		}
		c.CreatedAt = parseTime(createdAt)
		c.UpdatedAt = parseTime(updatedAt)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one comment by id.
func (r *CommentRepo) Get(ctx context.Context, id string) (Comment, error) {
	out, err := r.list(ctx, `
	SELECT id, review_id, file_path, line_number, content, resolved, created_at, updated_at
	FROM comments WHERE id = ?`, id)
	if err != nil {
		return Comment{}, err
	}
	if len(out) == 0 {
		return Comment{}, ErrNotFound
	}
	return out[0], nil
}
