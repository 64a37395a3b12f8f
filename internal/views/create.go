package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

type createField int

const (
	fieldTitle createField = iota
	fieldBase
	fieldTarget
)

// ReviewCreateView is the review creation form: a title input and two
// branch pickers sharing one loaded branch list.
type ReviewCreateView struct {
	title    textinput.Model
	branches event.LoadingState[[]string]
	base     int
	target   int
	focus    createField
	errMsg   string
}

func NewReviewCreate(branches event.LoadingState[[]string]) *ReviewCreateView {
	ti := textinput.New()
	ti.Placeholder = "review title"
	ti.CharLimit = 120
	ti.Focus()
	return &ReviewCreateView{title: ti, branches: branches}
}

func (v *ReviewCreateView) Kind() app.ViewKind { return app.KindReviewCreate }
func (v *ReviewCreateView) Overlay() bool      { return false }

func (v *ReviewCreateView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("tab", "next field"),
		bind("shift+tab", "previous field"),
		bind("enter", "create review"),
		bind("esc", "cancel"),
	}
}

func (v *ReviewCreateView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "esc":
		a.Events().SendApp(event.ViewClose{})
		return nil
	case "tab":
		v.setFocus((v.focus + 1) % 3)
		return nil
	case "shift+tab":
		v.setFocus((v.focus + 2) % 3)
		return nil
	case "enter":
		a.Events().SendApp(event.ReviewCreateSubmit{Data: event.ReviewCreateData{
			Title:        v.title.Value(),
			BaseBranch:   v.pick(v.base),
			TargetBranch: v.pick(v.target),
		}})
		return nil
	}

	if v.focus == fieldTitle {
		v.title, _ = v.title.Update(key)
		return nil
	}

	switch key.String() {
	case "j", "down":
		v.movePicker(1)
	case "k", "up":
		v.movePicker(-1)
	}
	return nil
}

func (v *ReviewCreateView) HandleApp(_ *app.App, ev event.AppEvent) {
	switch ev := ev.(type) {
	case event.BranchesState:
		v.branches = ev.State
		v.clampPickers()
	case event.ReviewCreateErr:
		v.errMsg = ev.Reason
	}
}

func (v *ReviewCreateView) setFocus(f createField) {
	v.focus = f
	if f == fieldTitle {
		v.title.Focus()
	} else {
		v.title.Blur()
	}
}

func (v *ReviewCreateView) pick(i int) string {
	branches, ok := v.branches.Value()
	if !ok || len(branches) == 0 {
		return ""
	}
	return branches[i]
}

func (v *ReviewCreateView) movePicker(delta int) {
	branches, ok := v.branches.Value()
	if !ok || len(branches) == 0 {
		return
	}
	idx := &v.base
	if v.focus == fieldTarget {
		idx = &v.target
	}
	*idx += delta
	if *idx < 0 {
		*idx = 0
	}
	if *idx >= len(branches) {
		*idx = len(branches) - 1
	}
}

func (v *ReviewCreateView) clampPickers() {
	branches, ok := v.branches.Value()
	if !ok {
		return
	}
	if v.base >= len(branches) {
		v.base = max(0, len(branches)-1)
	}
	if v.target >= len(branches) {
		v.target = max(0, len(branches)-1)
	}
}

func (v *ReviewCreateView) Render(_ *app.App, width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("New Review"))
	b.WriteString("\n\n")

	titleBox := theme.Box
	if v.focus == fieldTitle {
		titleBox = theme.FocusedBox
	}
	b.WriteString(titleBox.Render("Title: " + v.title.View()))
	b.WriteString("\n\n")

	b.WriteString(v.renderPicker("Base branch", v.base, v.focus == fieldBase))
	b.WriteString("\n")
	b.WriteString(v.renderPicker("Target branch", v.target, v.focus == fieldTarget))

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Error.Render(v.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.HelpDesc.Render("tab switch field  j/k pick branch  enter create  esc cancel"))
	return b.String()
}

func (v *ReviewCreateView) renderPicker(label string, selected int, focused bool) string {
	var b strings.Builder
	b.WriteString(theme.Muted.Render(label))
	b.WriteString("\n")

	switch v.branches.Phase() {
	case event.PhaseInit, event.PhaseLoading:
		b.WriteString(theme.Muted.Render("  loading branches..."))
	case event.PhaseError:
		reason, _ := v.branches.Err()
		b.WriteString(theme.Error.Render("  " + reason))
	case event.PhaseLoaded:
		branches, _ := v.branches.Value()
		if len(branches) == 0 {
			b.WriteString(theme.Muted.Render("  no branches found"))
		}
		for i, name := range branches {
			switch {
			case i == selected && focused:
				b.WriteString(theme.Selected.Render("  > " + name))
			case i == selected:
				b.WriteString(theme.Text.Render("  * " + name))
			default:
				b.WriteString(theme.Muted.Render("    " + name))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
