package service

import (
	"context"
	"sync"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
)

// AppState is the read-mostly snapshot of the shared loading states.
type AppState struct {
	Reviews  event.LoadingState[[]repository.Review]
	Branches event.LoadingState[[]string]
}

// StateService caches loading states so views created mid-session can seed
// themselves without waiting for the next load. It is the only shared
// mutable resource in the core and is guarded by a reader/writer lock:
// written from the processor, read from view factories.
type StateService struct {
	mu    sync.RWMutex
	state AppState
}

func NewStateService() *StateService { return &StateService{} }

// Snapshot returns a copy of the current state.
func (s *StateService) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *StateService) HandleApp(_ context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	switch ev := ev.(type) {
	case event.ReviewsState:
		s.mu.Lock()
		s.state.Reviews = ev.State
		s.mu.Unlock()
	case event.BranchesState:
		s.mu.Lock()
		s.state.Branches = ev.State
		s.mu.Unlock()
	default:
		return nil
	}

	snap := s.Snapshot()
	sc.Events.SendApp(event.StateUpdated{Reviews: snap.Reviews, Branches: snap.Branches})
	return nil
}
