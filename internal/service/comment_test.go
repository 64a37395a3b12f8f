package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
)

func line(n int64) *int64 { return &n }

func TestCommentCreateReloadsSameTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	svc := &CommentService{}
	seedReview(t, sc, "r1", nil, nil)

	require.NoError(t, svc.HandleApp(ctx, event.CommentCreate{
		ReviewID: "r1",
		FilePath: "a.go",
		Line:     line(4),
		Content:  "  looks off  ",
	}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 3)

	created, ok := events[0].(event.CommentCreated)
	require.True(t, ok)
	require.Equal(t, "looks off", created.Comment.Content, "content is trimmed")
	require.Equal(t, int64(4), *created.Comment.LineNumber)

	reload, ok := events[1].(event.CommentsLoad)
	require.True(t, ok)
	require.Equal(t, "r1", reload.ReviewID)
	require.Equal(t, "a.go", reload.FilePath)
	require.Equal(t, int64(4), *reload.Line)
	require.IsType(t, event.CommentCountsLoad{}, events[2])

	stored, err := sc.Comments.ListForLine(ctx, "r1", "a.go", 4)
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestCommentCreateRejectsEmptyContent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	svc := &CommentService{}
	seedReview(t, sc, "r1", nil, nil)

	require.NoError(t, svc.HandleApp(ctx, event.CommentCreate{
		ReviewID: "r1",
		FilePath: "a.go",
		Content:  "   \n  ",
	}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 1)
	errEv, ok := events[0].(event.CommentCreateErr)
	require.True(t, ok)
	require.Contains(t, errEv.Reason, "empty")

	stored, err := sc.Comments.ListForFile(ctx, "r1", "a.go")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestCommentsLoadIsLineScoped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	svc := &CommentService{}
	seedReview(t, sc, "r1", nil, nil)

	require.NoError(t, sc.Comments.Insert(ctx, repository.Comment{
		ID: "file1", ReviewID: "r1", FilePath: "a.go", Content: "file",
		CreatedAt: testNow, UpdatedAt: testNow,
	}))
	require.NoError(t, sc.Comments.Insert(ctx, repository.Comment{
		ID: "line1", ReviewID: "r1", FilePath: "a.go", LineNumber: line(9), Content: "line",
		CreatedAt: testNow, UpdatedAt: testNow,
	}))

	require.NoError(t, svc.HandleApp(ctx, event.CommentsLoad{
		ReviewID: "r1", FilePath: "a.go", Line: line(9),
	}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 2)
	loaded, ok := events[1].(event.CommentsState)
	require.True(t, ok)
	comments, _ := loaded.State.Value()
	require.Len(t, comments, 1)
	require.Equal(t, "line1", comments[0].ID)
}

func TestCommentResolveToggleCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	svc := &CommentService{}
	seedReview(t, sc, "r1", nil, nil)
	require.NoError(t, sc.Comments.Insert(ctx, repository.Comment{
		ID: "c1", ReviewID: "r1", FilePath: "a.go", Content: "x",
		CreatedAt: testNow, UpdatedAt: testNow,
	}))

	require.NoError(t, svc.HandleApp(ctx, event.CommentResolveToggle{CommentID: "c1"}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 3)
	toggled, ok := events[0].(event.CommentResolveToggled)
	require.True(t, ok)
	require.True(t, toggled.Resolved)

	reload, ok := events[1].(event.CommentsLoad)
	require.True(t, ok)
	require.Equal(t, "a.go", reload.FilePath)
	require.Nil(t, reload.Line, "file-level comment reloads the file list")
	require.IsType(t, event.CommentCountsLoad{}, events[2])
}

func TestCommentCountsLoadProtocol(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	svc := &CommentService{}
	seedReview(t, sc, "r1", nil, nil)
	require.NoError(t, sc.Comments.Insert(ctx, repository.Comment{
		ID: "c1", ReviewID: "r1", FilePath: "a.go", Content: "x",
		CreatedAt: testNow, UpdatedAt: testNow,
	}))

	require.NoError(t, svc.HandleApp(ctx, event.CommentCountsLoad{ReviewID: "r1"}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 2)
	loading, ok := events[0].(event.CommentCountsState)
	require.True(t, ok)
	require.Equal(t, event.PhaseLoading, loading.State.Phase())

	loaded, ok := events[1].(event.CommentCountsState)
	require.True(t, ok)
	counts, _ := loaded.State.Value()
	require.Equal(t, []string{"a.go"}, counts.FilesWithComments)
}
