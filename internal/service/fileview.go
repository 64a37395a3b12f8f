package service

import (
	"context"
	"fmt"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
)

// FileViewService tracks which files of a review have been viewed.
type FileViewService struct{}

func (s *FileViewService) HandleApp(ctx context.Context, ev event.AppEvent, sc *app.ServiceContext) error {
	switch ev := ev.(type) {
	case event.FileViewToggle:
		s.toggle(ctx, sc, ev.ReviewID, ev.FilePath)
	case event.FileViewsLoad:
		s.load(ctx, sc, ev.ReviewID)
	}
	return nil
}

func (s *FileViewService) toggle(ctx context.Context, sc *app.ServiceContext, reviewID, filePath string) {
	viewed, err := sc.FileViews.IsViewed(ctx, reviewID, filePath)
	if err != nil {
		sc.Events.SendApp(event.FileViewToggleErr{
			ReviewID: reviewID,
			FilePath: filePath,
			Reason:   fmt.Sprintf("check view status: %v", err),
		})
		return
	}

	if viewed {
		err = sc.FileViews.MarkUnviewed(ctx, reviewID, filePath)
	} else {
		err = sc.FileViews.MarkViewed(ctx, reviewID, filePath, sc.Clock.Now())
	}
	if err != nil {
		sc.Events.SendApp(event.FileViewToggleErr{
			ReviewID: reviewID,
			FilePath: filePath,
			Reason:   fmt.Sprintf("toggle view status: %v", err),
		})
		return
	}

	sc.Events.SendApp(event.FileViewToggled{ReviewID: reviewID, FilePath: filePath, Viewed: !viewed})
	sc.Events.SendApp(event.FileViewsLoad{ReviewID: reviewID})
}

func (s *FileViewService) load(ctx context.Context, sc *app.ServiceContext, reviewID string) {
	sc.Events.SendApp(event.FileViewsState{ReviewID: reviewID, State: event.Loading[[]string]()})
	files, err := sc.FileViews.ViewedFiles(ctx, reviewID)
	if err != nil {
		sc.Events.SendApp(event.FileViewsState{ReviewID: reviewID, State: event.Failed[[]string](err.Error())})
		return
	}
	sc.Events.SendApp(event.FileViewsState{ReviewID: reviewID, State: event.Loaded(files)})
}
