package service

import (
	"context"
	"log"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
)

// BranchStatusService re-checks every review against the repository: do
// its branches still exist, and have their heads moved since the SHAs were
// captured? Detected drift is persisted, then the review list is reloaded.
type BranchStatusService struct{}

func (s *BranchStatusService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	if _, ok := ev.(event.BranchStatusCheck); !ok {
		return nil
	}

	reviews, err := sc.Reviews.List(ctx)
	if err != nil {
		log.Printf("branch status check: list reviews: %v", err)
		return nil
	}

	for _, review := range reviews {
		baseSHA, baseExists, err := sc.Git.BranchHeadSHA(review.BaseBranch)
		if err != nil {
			log.Printf("branch status check: %s: %v", review.BaseBranch, err)
			continue
		}
		targetSHA, targetExists, err := sc.Git.BranchHeadSHA(review.TargetBranch)
		if err != nil {
			log.Printf("branch status check: %s: %v", review.TargetBranch, err)
			continue
		}

		var baseChanged, targetChanged *string
		if baseExists && review.BaseSHA != nil && baseSHA != *review.BaseSHA {
			baseChanged = &baseSHA
		}
		if targetExists && review.TargetSHA != nil && targetSHA != *review.TargetSHA {
			targetChanged = &targetSHA
		}

		existsChanged := boolChanged(review.BaseBranchExists, baseExists) ||
			boolChanged(review.TargetBranchExists, targetExists)
		if baseChanged == nil && targetChanged == nil && !existsChanged {
			continue
		}

		err = sc.Reviews.UpdateBranchStatus(ctx, review.ID,
			baseChanged, targetChanged, &baseExists, &targetExists, sc.Clock.Now())
		if err != nil {
			log.Printf("branch status check: update review %s: %v", review.ID, err)
			continue
		}
		log.Printf("branch status updated for review %s (base exists=%t changed=%t, target exists=%t changed=%t)",
			review.ID, baseExists, baseChanged != nil, targetExists, targetChanged != nil)
	}

	sc.Events.SendApp(event.ReviewsLoad{})
	return nil
}

func boolChanged(old *bool, now bool) bool {
	return old == nil || *old != now
}
