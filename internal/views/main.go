package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

// MainView is the root of the stack: the review list.
type MainView struct {
	reviews  event.LoadingState[[]repository.Review]
	selected int
	status   string
}

// NewMain seeds the list from the last known loading state.
func NewMain(reviews event.LoadingState[[]repository.Review]) *MainView {
	return &MainView{reviews: reviews}
}

func (v *MainView) Kind() app.ViewKind { return app.KindMain }
func (v *MainView) Overlay() bool      { return false }

func (v *MainView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("n", "new review"),
		bind("enter", "open review"),
		bind("d", "delete review"),
		bind("j", "move down"),
		bind("k", "move up"),
		bind("r", "reload reviews"),
		bind("R", "re-check branch status"),
		bind("q", "quit"),
	}
}

func (v *MainView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "q", "ctrl+c":
		a.Events().SendApp(event.Quit{})
	case "n":
		a.Events().SendApp(event.ReviewCreateOpen{})
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "enter", "o", " ":
		if r, ok := v.current(); ok {
			a.Events().SendApp(event.ReviewDetailsOpen{ReviewID: r.ID})
		}
	case "d":
		if r, ok := v.current(); ok {
			a.Events().SendApp(event.ReviewDeleteConfirm{ReviewID: r.ID})
		}
	case "r":
		a.Events().SendApp(event.ReviewsLoad{})
	case "R":
		a.Events().SendApp(event.BranchStatusCheck{})
	case "?":
		a.Events().SendApp(event.HelpOpen{Bindings: v.Keybindings()})
	}
	return nil
}

// HandleApp follows the state cache's broadcast rather than the raw
// ReviewsState propagation, so the list always mirrors what a freshly
// seeded view would see.
func (v *MainView) HandleApp(_ *app.App, ev event.AppEvent) {
	switch ev := ev.(type) {
	case event.StateUpdated:
		v.reviews = ev.Reviews
		v.clamp()
	case event.ReviewDeleted:
		v.status = ""
	case event.ReviewDeleteErr:
		v.status = "delete failed: " + ev.Reason
	case event.ReviewCreateErr:
		v.status = "create failed: " + ev.Reason
	case event.ReviewRefreshErr:
		v.status = "refresh failed: " + ev.Reason
	}
}

func (v *MainView) current() (repository.Review, bool) {
	reviews, ok := v.reviews.Value()
	if !ok || len(reviews) == 0 {
		return repository.Review{}, false
	}
	return reviews[v.selected], true
}

func (v *MainView) move(delta int) {
	reviews, ok := v.reviews.Value()
	if !ok || len(reviews) == 0 {
		return
	}
	v.selected += delta
	if v.selected < 0 {
		v.selected = 0
	}
	if v.selected >= len(reviews) {
		v.selected = len(reviews) - 1
	}
}

func (v *MainView) clamp() {
	reviews, ok := v.reviews.Value()
	if !ok || len(reviews) == 0 {
		v.selected = 0
		return
	}
	if v.selected >= len(reviews) {
		v.selected = len(reviews) - 1
	}
}

func (v *MainView) Render(_ *app.App, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("Reviews"))
	b.WriteString("\n\n")

	switch v.reviews.Phase() {
	case event.PhaseInit, event.PhaseLoading:
		b.WriteString(theme.Muted.Render("loading reviews..."))
	case event.PhaseError:
		reason, _ := v.reviews.Err()
		b.WriteString(theme.Error.Render("failed to load reviews: " + reason))
	case event.PhaseLoaded:
		reviews, _ := v.reviews.Value()
		if len(reviews) == 0 {
			b.WriteString(theme.Muted.Render("no reviews yet, press n to create one"))
		}
		for i, r := range reviews {
			line := fmt.Sprintf("%s  %s..%s  %s",
				r.Title, r.BaseBranch, r.TargetBranch, r.CreatedAt.Format("2006-01-02 15:04"))
			if r.BranchesDrifted() {
				line += "  " + theme.Warn.Render("[branch missing]")
			}
			if i == v.selected {
				b.WriteString(theme.Selected.Render("> " + line))
			} else {
				b.WriteString(theme.Text.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Error.Render(v.status))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.HelpDesc.Render("n new  enter open  d delete  R check branches  ? help  q quit"))
	return b.String()
}
