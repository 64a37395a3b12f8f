package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

// RefreshDialogView offers to re-capture the branch SHAs of a review so its
// diff follows the branches' current heads.
type RefreshDialogView struct {
	reviewID string
}

func NewRefreshDialog(reviewID string) *RefreshDialogView {
	return &RefreshDialogView{reviewID: reviewID}
}

func (v *RefreshDialogView) Kind() app.ViewKind { return app.KindRefreshDialog }
func (v *RefreshDialogView) Overlay() bool      { return true }

func (v *RefreshDialogView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("y", "refresh SHAs"),
		bind("n", "keep current SHAs"),
	}
}

func (v *RefreshDialogView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "y", "enter":
		a.Events().SendApp(event.ReviewRefresh{ReviewID: v.reviewID})
		a.Events().SendApp(event.ViewClose{})
	case "n", "esc", "q":
		a.Events().SendApp(event.ViewClose{})
	}
	return nil
}

func (v *RefreshDialogView) HandleApp(_ *app.App, _ event.AppEvent) {}

func (v *RefreshDialogView) Render(_ *app.App, _, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Text.Render("Re-capture branch SHAs for this review?"))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("The diff will follow the branches' current heads."))
	b.WriteString("\n\n")
	b.WriteString(theme.Key.Render("y") + theme.HelpDesc.Render(" refresh   "))
	b.WriteString(theme.Key.Render("n") + theme.HelpDesc.Render(" cancel"))
	return b.String()
}
