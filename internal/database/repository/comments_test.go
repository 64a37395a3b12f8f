package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentFileAndLineListsAreDisjoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewReviewRepo(db)
	comments := NewCommentRepo(db)

	insertReview(t, reviews, "r1", testTime(0))
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "file1", ReviewID: "r1", FilePath: "a.go", Content: "file-level",
		CreatedAt: testTime(1), UpdatedAt: testTime(1),
	}))
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "line1", ReviewID: "r1", FilePath: "a.go", LineNumber: int64Ptr(7), Content: "line-level",
		CreatedAt: testTime(2), UpdatedAt: testTime(2),
	}))

	fileComments, err := comments.ListForFile(ctx, "r1", "a.go")
	require.NoError(t, err)
	require.Len(t, fileComments, 1)
	require.Equal(t, "file1", fileComments[0].ID)
	require.Nil(t, fileComments[0].LineNumber)

	lineComments, err := comments.ListForLine(ctx, "r1", "a.go", 7)
	require.NoError(t, err)
	require.Len(t, lineComments, 1)
	require.Equal(t, "line1", lineComments[0].ID)
	require.Equal(t, int64(7), *lineComments[0].LineNumber)

	empty, err := comments.ListForLine(ctx, "r1", "a.go", 8)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCommentToggleResolved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewReviewRepo(db)
	comments := NewCommentRepo(db)

	insertReview(t, reviews, "r1", testTime(0))
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "c1", ReviewID: "r1", FilePath: "a.go", Content: "check this",
		CreatedAt: testTime(1), UpdatedAt: testTime(1),
	}))

	resolved, err := comments.ToggleResolved(ctx, "c1", testTime(2))
	require.NoError(t, err)
	require.True(t, resolved)

	resolved, err = comments.ToggleResolved(ctx, "c1", testTime(3))
	require.NoError(t, err)
	require.False(t, resolved)

	_, err = comments.ToggleResolved(ctx, "nope", testTime(4))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewReviewRepo(db)
	comments := NewCommentRepo(db)

	insertReview(t, reviews, "r1", testTime(0))

	// a.go: one unresolved file comment, one resolved line comment
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "a-file", ReviewID: "r1", FilePath: "a.go", Content: "x",
		CreatedAt: testTime(1), UpdatedAt: testTime(1),
	}))
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "a-line", ReviewID: "r1", FilePath: "a.go", LineNumber: int64Ptr(3),
		Content: "y", Resolved: true,
		CreatedAt: testTime(2), UpdatedAt: testTime(2),
	}))
	// b.go: fully resolved line comments
	require.NoError(t, comments.Insert(ctx, Comment{
		ID: "b-line", ReviewID: "r1", FilePath: "b.go", LineNumber: int64Ptr(5),
		Content: "z", Resolved: true,
		CreatedAt: testTime(3), UpdatedAt: testTime(3),
	}))

	counts, err := comments.Counts(ctx, "r1")
	require.NoError(t, err)

	require.Equal(t, []string{"a.go", "b.go"}, counts.FilesWithComments)
	require.Equal(t, []string{"a.go"}, counts.FilesWithFileComments)
	require.Equal(t, []string{"b.go"}, counts.FilesAllResolved, "a.go still has an unresolved comment")
	require.Equal(t, []int64{3}, counts.LinesWithComments["a.go"])
	require.Equal(t, []int64{3}, counts.LinesAllResolved["a.go"])
	require.Equal(t, []int64{5}, counts.LinesWithComments["b.go"])
}

func TestCommentCountsEmptyReview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewReviewRepo(db)
	comments := NewCommentRepo(db)

	insertReview(t, reviews, "r1", testTime(0))

	counts, err := comments.Counts(ctx, "r1")
	require.NoError(t, err)
	require.Empty(t, counts.FilesWithComments)
	require.Empty(t, counts.LinesWithComments)
}
