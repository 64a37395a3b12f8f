// Package event defines the message taxonomy of the application, the
// unbounded bus those messages travel on, and the producer that feeds the
// bus from the terminal and a fixed-rate ticker.
//
// Every asynchronous operation follows the same three-event protocol: a
// load request, a LoadingState propagation while in flight, and exactly one
// terminal Loaded/Error propagation. Mutations emit a result (or error)
// event and then re-request the relevant load instead of patching cached
// data in place.
package event

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/vcs"
)

// Kind discriminates the top-level event union.
type Kind int

const (
	// KindTick fires on a fixed schedule; used for idle updates.
	KindTick Kind = iota
	// KindInput carries a raw terminal key event.
	KindInput
	// KindApp carries a domain or navigation event.
	KindApp
)

// Event is the unit carried by the bus. Events are immutable after
// construction and shared by pointer; nothing mutates a dispatched event.
type Event struct {
	Kind Kind
	Key  tea.KeyMsg // set when Kind == KindInput
	App  AppEvent   // set when Kind == KindApp
}

// Tick constructs a tick event.
func Tick() *Event { return &Event{Kind: KindTick} }

// Input wraps a raw key event.
func Input(key tea.KeyMsg) *Event { return &Event{Kind: KindInput, Key: key} }

// App wraps an application event.
func App(app AppEvent) *Event { return &Event{Kind: KindApp, App: app} }

// AppEvent is the closed set of application events. Variants are small
// value types; handlers type-switch on them.
type AppEvent interface {
	appEvent()
}

// KeyBinding describes one key a view responds to, for the help modal.
// Key is the literal event re-injected when the binding is chosen from the
// help list.
type KeyBinding struct {
	Key  tea.KeyMsg
	Desc string
}

// ReviewCreateData is the submitted content of the review creation form.
type ReviewCreateData struct {
	Title        string
	BaseBranch   string
	TargetBranch string
}

// Navigation and lifecycle.
type (
	// Quit stops the run loop.
	Quit struct{}
	// ViewClose pops the active view; a no-op at the root.
	ViewClose struct{}
	// HelpOpen pushes the help modal over the active view.
	HelpOpen struct{ Bindings []KeyBinding }
	// HelpKeySelected closes the help modal and re-injects Key as terminal
	// input. The two-step protocol is deliberate: the pop must be processed
	// before the key so the underlying view handles it without the overlay.
	HelpKeySelected struct{ Key tea.KeyMsg }
	// ReviewCreateOpen pushes the review creation form.
	ReviewCreateOpen struct{}
	// ReviewDetailsOpen pushes the details view for a review.
	ReviewDetailsOpen struct{ ReviewID string }
	// ReviewDeleteConfirm pushes a confirmation dialog for deleting a review.
	ReviewDeleteConfirm struct{ ReviewID string }
	// ReviewRefreshOpen pushes the dialog offering to re-capture branch SHAs.
	ReviewRefreshOpen struct{ ReviewID string }
	// CommentsOpen pushes the comments view for a file or line.
	CommentsOpen struct {
		ReviewID string
		FilePath string
		Line     *int64
	}
)

// Reviews.
type (
	ReviewsLoad  struct{}
	ReviewsState struct {
		State LoadingState[[]repository.Review]
	}
	ReviewLoad     struct{ ReviewID string }
	ReviewLoaded   struct{ Review repository.Review }
	ReviewNotFound struct{ ReviewID string }
	ReviewLoadErr  struct {
		ReviewID string
		Reason   string
	}
	ReviewCreateSubmit struct{ Data ReviewCreateData }
	ReviewCreated      struct{ Review repository.Review }
	ReviewCreateErr    struct{ Reason string }
	ReviewDelete       struct{ ReviewID string }
	ReviewDeleted      struct{}
	ReviewDeleteErr    struct {
		ReviewID string
		Reason   string
	}
	// ReviewRefresh re-captures the branch SHAs of a review.
	ReviewRefresh    struct{ ReviewID string }
	ReviewRefreshErr struct {
		ReviewID string
		Reason   string
	}
)

// Branches and diffs.
type (
	BranchesLoad  struct{}
	BranchesState struct {
		State LoadingState[[]string]
	}
	DiffLoad  struct{ ReviewID string }
	DiffState struct {
		ReviewID string
		State    LoadingState[vcs.DiffSet]
	}
	// BranchStatusCheck re-queries branch existence and head SHAs for every
	// review and persists any drift.
	BranchStatusCheck struct{}
)

// File views.
type (
	FileViewsLoad  struct{ ReviewID string }
	FileViewsState struct {
		ReviewID string
		State    LoadingState[[]string]
	}
	FileViewToggle struct {
		ReviewID string
		FilePath string
	}
	FileViewToggled struct {
		ReviewID string
		FilePath string
		Viewed   bool
	}
	FileViewToggleErr struct {
		ReviewID string
		FilePath string
		Reason   string
	}
)

// Comments.
type (
	CommentsLoad struct {
		ReviewID string
		FilePath string
		Line     *int64
	}
	CommentsState struct {
		State LoadingState[[]repository.Comment]
	}
	CommentCreate struct {
		ReviewID string
		FilePath string
		Line     *int64
		Content  string
	}
	CommentCreated        struct{ Comment repository.Comment }
	CommentCreateErr      struct{ Reason string }
	CommentResolveToggle  struct{ CommentID string }
	CommentResolveToggled struct {
		CommentID string
		Resolved  bool
	}
	CommentResolveErr struct {
		CommentID string
		Reason    string
	}
	CommentCountsLoad  struct{ ReviewID string }
	CommentCountsState struct {
		ReviewID string
		State    LoadingState[repository.CommentCounts]
	}
)

// StateUpdated broadcasts a snapshot of the read-mostly state cache after
// it absorbs a loading-state change.
type StateUpdated struct {
	Reviews  LoadingState[[]repository.Review]
	Branches LoadingState[[]string]
}

func (Quit) appEvent()                  {}
func (ViewClose) appEvent()             {}
func (HelpOpen) appEvent()              {}
func (HelpKeySelected) appEvent()       {}
func (ReviewCreateOpen) appEvent()      {}
func (ReviewDetailsOpen) appEvent()     {}
func (ReviewDeleteConfirm) appEvent()   {}
func (ReviewRefreshOpen) appEvent()     {}
func (CommentsOpen) appEvent()          {}
func (ReviewsLoad) appEvent()           {}
func (ReviewsState) appEvent()          {}
func (ReviewLoad) appEvent()            {}
func (ReviewLoaded) appEvent()          {}
func (ReviewNotFound) appEvent()        {}
func (ReviewLoadErr) appEvent()         {}
func (ReviewCreateSubmit) appEvent()    {}
func (ReviewCreated) appEvent()         {}
func (ReviewCreateErr) appEvent()       {}
func (ReviewDelete) appEvent()          {}
func (ReviewDeleted) appEvent()         {}
func (ReviewDeleteErr) appEvent()       {}
func (ReviewRefresh) appEvent()         {}
func (ReviewRefreshErr) appEvent()      {}
func (BranchesLoad) appEvent()          {}
func (BranchesState) appEvent()         {}
func (DiffLoad) appEvent()              {}
func (DiffState) appEvent()             {}
func (BranchStatusCheck) appEvent()     {}
func (FileViewsLoad) appEvent()         {}
func (FileViewsState) appEvent()        {}
func (FileViewToggle) appEvent()        {}
func (FileViewToggled) appEvent()       {}
func (FileViewToggleErr) appEvent()     {}
func (CommentsLoad) appEvent()          {}
func (CommentsState) appEvent()         {}
func (CommentCreate) appEvent()         {}
func (CommentCreated) appEvent()        {}
func (CommentCreateErr) appEvent()      {}
func (CommentResolveToggle) appEvent()  {}
func (CommentResolveToggled) appEvent() {}
func (CommentResolveErr) appEvent()     {}
func (CommentCountsLoad) appEvent()     {}
func (CommentCountsState) appEvent()    {}
func (StateUpdated) appEvent()          {}
