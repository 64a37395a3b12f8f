// Package service implements the event handlers that connect the bus to
// storage and git. Each service follows the same protocol: a load request
// emits a Loading state before the fetch and exactly one Loaded/Error
// after; successful mutations re-request the relevant load instead of
// patching cached data.
package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
)

// ReviewService handles review loading, creation, deletion and refresh.
type ReviewService struct{}

func (s *ReviewService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	switch ev := ev.(type) {
	case event.ReviewsLoad:
		s.load(ctx, sc)
	case event.ReviewLoad:
		s.loadOne(ctx, sc, ev.ReviewID)
	case event.ReviewCreateSubmit:
		s.create(ctx, sc, ev.Data)
	case event.ReviewDelete:
		s.delete(ctx, sc, ev.ReviewID)
	case event.ReviewRefresh:
		s.refresh(ctx, sc, ev.ReviewID)
	}
	return nil
}

func (s *ReviewService) load(ctx context.Context, sc *app.ServiceContext) {
	sc.Events.SendApp(event.ReviewsState{State: event.Loading[[]repository.Review]()})
	reviews, err := sc.Reviews.List(ctx)
	if err != nil {
		sc.Events.SendApp(event.ReviewsState{State: event.Failed[[]repository.Review](err.Error())})
		return
	}
	sc.Events.SendApp(event.ReviewsState{State: event.Loaded(reviews)})
}

func (s *ReviewService) loadOne(ctx context.Context, sc *app.ServiceContext, id string) {
	review, err := sc.Reviews.Get(ctx, id)
	switch {
	case err == repository.ErrNotFound:
		sc.Events.SendApp(event.ReviewNotFound{ReviewID: id})
	case err != nil:
		sc.Events.SendApp(event.ReviewLoadErr{ReviewID: id, Reason: err.Error()})
	default:
		sc.Events.SendApp(event.ReviewLoaded{Review: review})
	}
}

// create trims the submitted title; a whitespace-only title creates nothing
// but still closes the form. Branch head SHAs are captured at creation so
// the review's diff stays stable while the branches move on.
func (s *ReviewService) create(ctx context.Context, sc *app.ServiceContext, data event.ReviewCreateData) {
	title := strings.TrimSpace(data.Title)
	if title == "" {
		sc.Events.SendApp(event.ViewClose{})
		return
	}

	baseSHA, baseExists := s.headSHA(sc, data.BaseBranch)
	targetSHA, targetExists := s.headSHA(sc, data.TargetBranch)

	now := sc.Clock.Now()
	review := repository.Review{
		ID:                 uuid.NewString(),
		Title:              title,
		BaseBranch:         data.BaseBranch,
		TargetBranch:       data.TargetBranch,
		BaseSHA:            baseSHA,
		TargetSHA:          targetSHA,
		BaseBranchExists:   &baseExists,
		TargetBranchExists: &targetExists,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := sc.Reviews.Insert(ctx, review); err != nil {
		sc.Events.SendApp(event.ReviewCreateErr{Reason: err.Error()})
		return
	}
	log.Printf("created review %s (%s..%s)", review.Title, review.BaseBranch, review.TargetBranch)
	sc.Events.SendApp(event.ReviewCreated{Review: review})
	sc.Events.SendApp(event.ReviewsLoad{})
	sc.Events.SendApp(event.ViewClose{})
}

func (s *ReviewService) delete(ctx context.Context, sc *app.ServiceContext, id string) {
	if err := sc.Reviews.Delete(ctx, id); err != nil {
		sc.Events.SendApp(event.ReviewDeleteErr{ReviewID: id, Reason: err.Error()})
		return
	}
	sc.Events.SendApp(event.ReviewDeleted{})
	sc.Events.SendApp(event.ReviewsLoad{})
}

// refresh re-captures both branch SHAs, then reloads the list and the diff.
func (s *ReviewService) refresh(ctx context.Context, sc *app.ServiceContext, id string) {
	review, err := sc.Reviews.Get(ctx, id)
	if err != nil {
		sc.Events.SendApp(event.ReviewRefreshErr{ReviewID: id, Reason: err.Error()})
		return
	}
	baseSHA, _ := s.headSHA(sc, review.BaseBranch)
	targetSHA, _ := s.headSHA(sc, review.TargetBranch)
	if err := sc.Reviews.UpdateSHAs(ctx, id, baseSHA, targetSHA, sc.Clock.Now()); err != nil {
		sc.Events.SendApp(event.ReviewRefreshErr{ReviewID: id, Reason: err.Error()})
		return
	}
	sc.Events.SendApp(event.ReviewsLoad{})
	sc.Events.SendApp(event.ReviewLoad{ReviewID: id})
	sc.Events.SendApp(event.DiffLoad{ReviewID: id})
}

func (s *ReviewService) headSHA(sc *app.ServiceContext, branch string) (*string, bool) {
	sha, ok, err := sc.Git.BranchHeadSHA(branch)
	if err != nil || !ok {
		return nil, false
	}
	return &sha, true
}
