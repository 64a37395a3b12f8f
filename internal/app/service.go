package app

import (
	"context"

	"github.com/jask/gitreview/internal/clock"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/vcs"
)

// ServiceContext bundles the collaborators a service may touch while
// handling one event. It is passed by pointer for the duration of a single
// dispatch; services must not retain it.
type ServiceContext struct {
	Reviews   *repository.ReviewRepo
	Comments  *repository.CommentRepo
	FileViews *repository.FileViewRepo
	Git       *vcs.Runner
	Events    *event.Bus
	Clock     clock.Clock
}

// Service reacts to application events by performing I/O and enqueuing
// follow-up events. A service that does not recognize an event must return
// nil without side effects. Services surface domain failures as …Err
// events; a non-nil error return is reserved for unexpected conditions and
// never aborts the processor.
type Service interface {
	HandleApp(ctx context.Context, ev event.AppEvent, sc *ServiceContext) error
}
