package service

import (
	"context"
	"fmt"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/vcs"
)

// BranchService loads the local branch list from git.
type BranchService struct{}

func (s *BranchService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	if _, ok := ev.(event.BranchesLoad); !ok {
		return nil
	}
	sc.Events.SendApp(event.BranchesState{State: event.Loading[[]string]()})
	branches, err := sc.Git.Branches()
	if err != nil {
		sc.Events.SendApp(event.BranchesState{State: event.Failed[[]string](err.Error())})
		return nil
	}
	sc.Events.SendApp(event.BranchesState{State: event.Loaded(branches)})
	return nil
}

// DiffService computes the diff between a review's recorded SHAs.
type DiffService struct{}

func (s *DiffService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	load, ok := ev.(event.DiffLoad)
	if !ok {
		return nil
	}
	sc.Events.SendApp(event.DiffState{ReviewID: load.ReviewID, State: event.Loading[vcs.DiffSet]()})

	review, err := sc.Reviews.Get(ctx, load.ReviewID)
	if err != nil {
		sc.Events.SendApp(event.DiffState{ReviewID: load.ReviewID, State: event.Failed[vcs.DiffSet](err.Error())})
		return nil
	}
	if review.BaseSHA == nil || review.TargetSHA == nil {
		reason := s.missingSHAReason(sc, review.BaseSHA == nil, review.BaseBranch, review.TargetSHA == nil, review.TargetBranch)
		sc.Events.SendApp(event.DiffState{ReviewID: load.ReviewID, State: event.Failed[vcs.DiffSet](reason)})
		return nil
	}

	diff, err := sc.Git.DiffBetween(*review.BaseSHA, *review.TargetSHA)
	if err != nil {
		sc.Events.SendApp(event.DiffState{ReviewID: load.ReviewID, State: event.Failed[vcs.DiffSet](err.Error())})
		return nil
	}
	sc.Events.SendApp(event.DiffState{ReviewID: load.ReviewID, State: event.Loaded(diff)})
	return nil
}

// missingSHAReason names the branch whose head was never captured, with a
// near-miss suggestion when the branch name looks like a typo.
func (s *DiffService) missingSHAReason(sc *app.ServiceContext, baseMissing bool, baseBranch string, targetMissing bool, targetBranch string) string {
	missing := baseBranch
	if !baseMissing {
		missing = targetBranch
	}
	reason := fmt.Sprintf("no recorded commit for branch %q", missing)
	if branches, err := sc.Git.Branches(); err == nil {
		if suggestion := vcs.SuggestBranch(missing, branches); suggestion != "" && suggestion != missing {
			reason += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
	}
	return reason
}
