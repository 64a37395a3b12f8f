package views

import (
	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/service"
)

// NewFactories wires the view constructors used by the processor. New views
// seed themselves from the state cache so they render the last known data
// immediately instead of a blank loading screen.
func NewFactories(state *service.StateService) app.Factories {
	return app.Factories{
		ReviewCreate: func() app.View {
			return NewReviewCreate(state.Snapshot().Branches)
		},
		ReviewDetails: func(reviewID string) app.View {
			return NewReviewDetails(reviewID)
		},
		Comments: func(reviewID, filePath string, line *int64) app.View {
			return NewComments(reviewID, filePath, line)
		},
		Confirm: func(message string, onConfirm, onCancel event.AppEvent) app.View {
			return NewConfirm(message, onConfirm, onCancel)
		},
		Help: func(bindings []event.KeyBinding) app.View {
			return NewHelp(bindings)
		},
		RefreshDialog: func(reviewID string) app.View {
			return NewRefreshDialog(reviewID)
		},
	}
}
