package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

// ConfirmView is a yes/no modal. Confirming emits the configured event and
// then closes the dialog; cancelling emits only the cancel event, which is
// ViewClose for plain dismissal.
type ConfirmView struct {
	message   string
	onConfirm event.AppEvent
	onCancel  event.AppEvent
}

func NewConfirm(message string, onConfirm, onCancel event.AppEvent) *ConfirmView {
	return &ConfirmView{message: message, onConfirm: onConfirm, onCancel: onCancel}
}

func (v *ConfirmView) Kind() app.ViewKind { return app.KindConfirm }
func (v *ConfirmView) Overlay() bool      { return true }

func (v *ConfirmView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("y", "confirm"),
		bind("n", "cancel"),
	}
}

func (v *ConfirmView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "y", "enter":
		a.Events().SendApp(v.onConfirm)
		a.Events().SendApp(event.ViewClose{})
	case "n", "esc", "q":
		a.Events().SendApp(v.onCancel)
	}
	return nil
}

func (v *ConfirmView) HandleApp(_ *app.App, _ event.AppEvent) {}

func (v *ConfirmView) Render(_ *app.App, _, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Text.Render(v.message))
	b.WriteString("\n\n")
	b.WriteString(theme.Key.Render("y") + theme.HelpDesc.Render(" confirm   "))
	b.WriteString(theme.Key.Render("n") + theme.HelpDesc.Render(" cancel"))
	return b.String()
}
