package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/event"
)

// ViewKind discriminates view implementations, mostly for tests and logs.
type ViewKind string

const (
	KindMain          ViewKind = "main"
	KindReviewCreate  ViewKind = "review-create"
	KindReviewDetails ViewKind = "review-details"
	KindComments      ViewKind = "comments"
	KindConfirm       ViewKind = "confirm"
	KindHelp          ViewKind = "help"
	KindRefreshDialog ViewKind = "refresh-dialog"
)

// View is one UI mode occupying a position in the navigation stack. The top
// of the stack receives key input; every view receives app events while
// active. Views own their display state and emit events through the bus
// rather than mutating anything outside themselves.
type View interface {
	Kind() ViewKind

	// Render paints the view into a width×height character area.
	Render(a *App, width, height int) string

	// HandleKey reacts to a key press. Only the active view is called.
	HandleKey(a *App, key tea.KeyMsg) error

	// HandleApp reacts to an application event delivered by the processor.
	HandleApp(a *App, ev event.AppEvent)

	// Keybindings lists the keys this view responds to, for the help modal.
	Keybindings() []event.KeyBinding

	// Overlay reports whether this view renders on top of its ancestors
	// (modal dialogs) instead of replacing the whole frame.
	Overlay() bool
}

// Factories construct views on navigation events. They are injected by the
// bootstrap so the processor can open views without depending on their
// implementations.
type Factories struct {
	ReviewCreate  func() View
	ReviewDetails func(reviewID string) View
	Comments      func(reviewID, filePath string, line *int64) View
	Confirm       func(message string, onConfirm, onCancel event.AppEvent) View
	Help          func(bindings []event.KeyBinding) View
	RefreshDialog func(reviewID string) View
}
