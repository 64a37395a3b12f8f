package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
)

// CommentService handles comment loading, creation and resolution.
type CommentService struct{}

func (s *CommentService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	switch ev := ev.(type) {
	case event.CommentsLoad:
		s.load(ctx, sc, ev)
	case event.CommentCreate:
		s.create(ctx, sc, ev)
	case event.CommentResolveToggle:
		s.toggleResolved(ctx, sc, ev.CommentID)
	case event.CommentCountsLoad:
		s.loadCounts(ctx, sc, ev.ReviewID)
	}
	return nil
}

func (s *CommentService) load(ctx context.Context, sc *app.ServiceContext, ev event.CommentsLoad) {
	sc.Events.SendApp(event.CommentsState{State: event.Loading[[]repository.Comment]()})

	var (
		comments []repository.Comment
		err      error
	)
	if ev.Line != nil {
		comments, err = sc.Comments.ListForLine(ctx, ev.ReviewID, ev.FilePath, *ev.Line)
	} else {
		comments, err = sc.Comments.ListForFile(ctx, ev.ReviewID, ev.FilePath)
	}
	if err != nil {
		sc.Events.SendApp(event.CommentsState{
			State: event.Failed[[]repository.Comment](fmt.Sprintf("load comments: %v", err)),
		})
		return
	}
	sc.Events.SendApp(event.CommentsState{State: event.Loaded(comments)})
}

func (s *CommentService) create(ctx context.Context, sc *app.ServiceContext, ev event.CommentCreate) {
	content := strings.TrimSpace(ev.Content)
	if content == "" {
		sc.Events.SendApp(event.CommentCreateErr{Reason: "comment content cannot be empty"})
		return
	}

	now := sc.Clock.Now()
	comment := repository.Comment{
		ID:         uuid.NewString(),
		ReviewID:   ev.ReviewID,
		FilePath:   ev.FilePath,
		LineNumber: ev.Line,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := sc.Comments.Insert(ctx, comment); err != nil {
		sc.Events.SendApp(event.CommentCreateErr{Reason: err.Error()})
		return
	}
	sc.Events.SendApp(event.CommentCreated{Comment: comment})
	// reload the same target so the list reflects storage
	sc.Events.SendApp(event.CommentsLoad{ReviewID: ev.ReviewID, FilePath: ev.FilePath, Line: ev.Line})
	sc.Events.SendApp(event.CommentCountsLoad{ReviewID: ev.ReviewID})
}

func (s *CommentService) toggleResolved(ctx context.Context, sc *app.ServiceContext, id string) {
	comment, err := sc.Comments.Get(ctx, id)
	if err != nil {
		sc.Events.SendApp(event.CommentResolveErr{CommentID: id, Reason: err.Error()})
		return
	}
	resolved, err := sc.Comments.ToggleResolved(ctx, id, sc.Clock.Now())
	if err != nil {
		sc.Events.SendApp(event.CommentResolveErr{CommentID: id, Reason: err.Error()})
		return
	}
	sc.Events.SendApp(event.CommentResolveToggled{CommentID: id, Resolved: resolved})
	sc.Events.SendApp(event.CommentsLoad{ReviewID: comment.ReviewID, FilePath: comment.FilePath, Line: comment.LineNumber})
	sc.Events.SendApp(event.CommentCountsLoad{ReviewID: comment.ReviewID})
}

func (s *CommentService) loadCounts(ctx context.Context, sc *app.ServiceContext, reviewID string) {
	sc.Events.SendApp(event.CommentCountsState{
		ReviewID: reviewID,
		State:    event.Loading[repository.CommentCounts](),
	})
	counts, err := sc.Comments.Counts(ctx, reviewID)
	if err != nil {
		sc.Events.SendApp(event.CommentCountsState{
			ReviewID: reviewID,
			State:    event.Failed[repository.CommentCounts](err.Error()),
		})
		return
	}
	sc.Events.SendApp(event.CommentCountsState{ReviewID: reviewID, State: event.Loaded(counts)})
}
