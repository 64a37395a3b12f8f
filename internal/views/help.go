package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

// HelpView lists the keybindings of the view it was opened over. Choosing
// an entry re-injects that key through the bus so the underlying view
// handles it after the modal has closed.
type HelpView struct {
	bindings []event.KeyBinding
	selected int
}

func NewHelp(bindings []event.KeyBinding) *HelpView {
	return &HelpView{bindings: bindings}
}

func (v *HelpView) Kind() app.ViewKind { return app.KindHelp }
func (v *HelpView) Overlay() bool      { return true }

func (v *HelpView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("enter", "run binding"),
		bind("esc", "close help"),
	}
}

func (v *HelpView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "esc", "q", "?":
		a.Events().SendApp(event.ViewClose{})
	case "j", "down":
		if v.selected < len(v.bindings)-1 {
			v.selected++
		}
	case "k", "up":
		if v.selected > 0 {
			v.selected--
		}
	case "enter":
		if len(v.bindings) > 0 {
			a.Events().SendApp(event.HelpKeySelected{Key: v.bindings[v.selected].Key})
		}
	}
	return nil
}

func (v *HelpView) HandleApp(_ *app.App, _ event.AppEvent) {}

func (v *HelpView) Render(_ *app.App, _, _ int) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("Keys"))
	b.WriteString("\n\n")
	for i, kb := range v.bindings {
		label := theme.Key.Render(keyLabel(kb.Key)) + "  " + theme.HelpDesc.Render(kb.Desc)
		if i == v.selected {
			b.WriteString(theme.Selected.Render("> ") + label)
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpDesc.Render("enter run  esc close"))
	return b.String()
}

func keyLabel(key tea.KeyMsg) string {
	s := key.String()
	if s == " " {
		return "space"
	}
	return s
}
