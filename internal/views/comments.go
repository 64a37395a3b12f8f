package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
)

// CommentsView lists the comments for one file or line and hosts the
// editor for writing new ones.
type CommentsView struct {
	reviewID string
	filePath string
	line     *int64

	comments event.LoadingState[[]repository.Comment]
	editor   textarea.Model
	editing  bool
	selected int
	status   string
}

func NewComments(reviewID, filePath string, line *int64) *CommentsView {
	ta := textarea.New()
	ta.Placeholder = "write a comment"
	ta.SetHeight(4)
	return &CommentsView{reviewID: reviewID, filePath: filePath, line: line, editor: ta}
}

func (v *CommentsView) Kind() app.ViewKind { return app.KindComments }
func (v *CommentsView) Overlay() bool      { return false }

func (v *CommentsView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("i", "write comment"),
		bind("ctrl+s", "save comment"),
		bind("x", "toggle resolved"),
		bind("j", "move down"),
		bind("k", "move up"),
		bind("esc", "back"),
	}
}

func (v *CommentsView) HandleKey(a *app.App, key tea.KeyMsg) error {
	if v.editing {
		switch key.String() {
		case "esc":
			v.editing = false
			v.editor.Blur()
		case "ctrl+s":
			a.Events().SendApp(event.CommentCreate{
				ReviewID: v.reviewID,
				FilePath: v.filePath,
				Line:     v.line,
				Content:  v.editor.Value(),
			})
		default:
			v.editor, _ = v.editor.Update(key)
		}
		return nil
	}

	switch key.String() {
	case "esc", "q":
		a.Events().SendApp(event.ViewClose{})
	case "i", "n":
		v.editing = true
		v.editor.Focus()
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "x", "enter":
		if c, ok := v.current(); ok {
			a.Events().SendApp(event.CommentResolveToggle{CommentID: c.ID})
		}
	case "?":
		a.Events().SendApp(event.HelpOpen{Bindings: v.Keybindings()})
	}
	return nil
}

func (v *CommentsView) HandleApp(_ *app.App, ev event.AppEvent) {
	switch ev := ev.(type) {
	case event.CommentsState:
		v.comments = ev.State
		v.clamp()
	case event.CommentCreated:
		v.editing = false
		v.editor.Reset()
		v.editor.Blur()
		v.status = ""
	case event.CommentCreateErr:
		v.status = ev.Reason
	case event.CommentResolveErr:
		v.status = "resolve failed: " + ev.Reason
	}
}

func (v *CommentsView) current() (repository.Comment, bool) {
	comments, ok := v.comments.Value()
	if !ok || len(comments) == 0 {
		return repository.Comment{}, false
	}
	return comments[v.selected], true
}

func (v *CommentsView) move(delta int) {
	comments, ok := v.comments.Value()
	if !ok || len(comments) == 0 {
		return
	}
	v.selected = clampIdx(v.selected+delta, len(comments))
}

func (v *CommentsView) clamp() {
	comments, ok := v.comments.Value()
	if !ok || len(comments) == 0 {
		v.selected = 0
		return
	}
	v.selected = clampIdx(v.selected, len(comments))
}

func (v *CommentsView) Render(_ *app.App, width, height int) string {
	var b strings.Builder
	target := v.filePath
	if v.line != nil {
		target = fmt.Sprintf("%s:%d", v.filePath, *v.line)
	}
	b.WriteString(theme.Header.Render("Comments"))
	b.WriteString("  ")
	b.WriteString(theme.Muted.Render(target))
	b.WriteString("\n\n")

	switch v.comments.Phase() {
	case event.PhaseInit, event.PhaseLoading:
		b.WriteString(theme.Muted.Render("loading comments..."))
		b.WriteString("\n")
	case event.PhaseError:
		reason, _ := v.comments.Err()
		b.WriteString(theme.Error.Render(reason))
		b.WriteString("\n")
	case event.PhaseLoaded:
		comments, _ := v.comments.Value()
		if len(comments) == 0 {
			b.WriteString(theme.Muted.Render("no comments yet, press i to write one"))
			b.WriteString("\n")
		}
		for i, c := range comments {
			mark := theme.Warn.Render("●")
			if c.Resolved {
				mark = theme.Success.Render("✓")
			}
			head := fmt.Sprintf("%s %s", mark, c.CreatedAt.Format("2006-01-02 15:04"))
			if i == v.selected && !v.editing {
				b.WriteString(theme.Selected.Render("> ") + head)
			} else {
				b.WriteString("  " + head)
			}
			b.WriteString("\n")
			for _, line := range strings.Split(c.Content, "\n") {
				b.WriteString(theme.Text.Render("    " + line))
				b.WriteString("\n")
			}
		}
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(theme.FocusedBox.Render(v.editor.View()))
		b.WriteString("\n")
		b.WriteString(theme.HelpDesc.Render("ctrl+s save  esc stop editing"))
	} else {
		b.WriteString("\n")
		b.WriteString(theme.HelpDesc.Render("i write  x resolve  esc back"))
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Error.Render(v.status))
	}
	return b.String()
}
