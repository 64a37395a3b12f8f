package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/vcs"
)

func TestStateServiceCachesLoadingStates(t *testing.T) {
	t.Parallel()
	sc := newTestContext(t)
	svc := NewStateService()

	reviews := []repository.Review{{ID: "r1", Title: "one"}}
	require.NoError(t, svc.HandleApp(context.Background(),
		event.ReviewsState{State: event.Loaded(reviews)}, sc))

	snap := svc.Snapshot()
	got, ok := snap.Reviews.Value()
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, event.PhaseInit, snap.Branches.Phase(), "branches untouched")

	events := appEvents(t, sc.Events)
	require.Len(t, events, 1)
	updated, ok := events[0].(event.StateUpdated)
	require.True(t, ok)
	cached, _ := updated.Reviews.Value()
	require.Equal(t, "r1", cached[0].ID)
}

func TestStateServiceIgnoresOtherEvents(t *testing.T) {
	t.Parallel()
	sc := newTestContext(t)
	svc := NewStateService()

	require.NoError(t, svc.HandleApp(context.Background(), event.ReviewsLoad{}, sc))
	require.Empty(t, appEvents(t, sc.Events))
}

func TestBranchStatusCheckDetectsDrift(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sc := newTestContext(t)
	sc.Git = vcs.NewRunner(gitRepo(t))
	svc := &BranchStatusService{}

	// base branch exists with a stale recorded SHA; target branch is gone
	seedReview(t, sc, "r1", sha("aaaa"), sha("bbbb"))

	require.NoError(t, svc.HandleApp(ctx, event.BranchStatusCheck{}, sc))

	events := appEvents(t, sc.Events)
	require.Len(t, events, 1)
	require.IsType(t, event.ReviewsLoad{}, events[0])

	stored, err := sc.Reviews.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, stored.BaseBranchExists)
	require.True(t, *stored.BaseBranchExists)
	require.NotNil(t, stored.TargetBranchExists)
	require.False(t, *stored.TargetBranchExists)
	require.NotEqual(t, "aaaa", *stored.BaseSHA, "stale base SHA re-captured")
	require.True(t, stored.BranchesDrifted())
}
