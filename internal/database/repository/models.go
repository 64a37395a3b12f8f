// Package repository provides CRUD access to review records.
package repository

import "time"

// Review is one review session over a base..target branch pair. The SHAs
// are captured at creation time so the diff stays stable while branches
// move; the *_exists flags record the last known branch status.
type Review struct {
	ID                 string
	Title              string
	BaseBranch         string
	TargetBranch       string
	BaseSHA            *string
	TargetSHA          *string
	BaseBranchExists   *bool
	TargetBranchExists *bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// BranchesDrifted reports whether the last status check found either branch
// missing. SHA drift is reported by comparing against the VCS layer.
func (r Review) BranchesDrifted() bool {
	return (r.BaseBranchExists != nil && !*r.BaseBranchExists) ||
		(r.TargetBranchExists != nil && !*r.TargetBranchExists)
}

// Comment is attached to a file (LineNumber nil) or to a specific line.
type Comment struct {
	ID         string
	ReviewID   string
	FilePath   string
	LineNumber *int64
	Content    string
	Resolved   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FileView marks a file as viewed within a review.
type FileView struct {
	ID        int64
	ReviewID  string
	FilePath  string
	CreatedAt time.Time
}

// CommentCounts aggregates comment presence per file and line, used for
// indicator glyphs in the details view.
type CommentCounts struct {
	// FilesWithComments lists files carrying any comment, file- or line-level.
	FilesWithComments []string
	// FilesWithFileComments lists files carrying at least one file-level comment.
	FilesWithFileComments []string
	// LinesWithComments maps file path to line numbers carrying comments.
	LinesWithComments map[string][]int64
	// FilesAllResolved lists files whose comments are all resolved.
	FilesAllResolved []string
	// LinesAllResolved maps file path to lines whose comments are all resolved.
	LinesAllResolved map[string][]int64
}

const timeFormat = time.RFC3339

func formatTime(t time.Time) string { return t.UTC().Format(timeFormat) }

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
