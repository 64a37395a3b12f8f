package views

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/theme"
	"github.com/jask/gitreview/internal/vcs"
)

// ReviewDetailsView shows one review: the changed files on the left and the
// diff of the selected file on the right. Focus moves between the file list
// and the diff lines; line focus is what line comments attach to.
type ReviewDetailsView struct {
	reviewID string

	review   *repository.Review
	notFound bool
	loadErr  string

	diff   event.LoadingState[vcs.DiffSet]
	viewed map[string]bool
	counts repository.CommentCounts

	fileIdx   int
	lineIdx   int
	focusDiff bool
	status    string
}

func NewReviewDetails(reviewID string) *ReviewDetailsView {
	return &ReviewDetailsView{reviewID: reviewID, viewed: map[string]bool{}}
}

func (v *ReviewDetailsView) Kind() app.ViewKind { return app.KindReviewDetails }
func (v *ReviewDetailsView) Overlay() bool      { return false }

func (v *ReviewDetailsView) Keybindings() []event.KeyBinding {
	return []event.KeyBinding{
		bind("j", "move down"),
		bind("k", "move up"),
		bind("tab", "switch pane"),
		bind("v", "toggle file viewed"),
		bind("c", "file comments"),
		bind("C", "line comments"),
		bind("r", "re-capture branch SHAs"),
		bind("esc", "back"),
	}
}

func (v *ReviewDetailsView) HandleKey(a *app.App, key tea.KeyMsg) error {
	switch key.String() {
	case "esc", "q":
		a.Events().SendApp(event.ViewClose{})
	case "j", "down":
		v.move(1)
	case "k", "up":
		v.move(-1)
	case "tab", "l", "right":
		if _, ok := v.currentFile(); ok {
			v.focusDiff = true
		}
	case "h", "left":
		v.focusDiff = false
	case "v":
		if f, ok := v.currentFile(); ok {
			a.Events().SendApp(event.FileViewToggle{ReviewID: v.reviewID, FilePath: f.Path})
		}
	case "c":
		if f, ok := v.currentFile(); ok {
			a.Events().SendApp(event.CommentsOpen{ReviewID: v.reviewID, FilePath: f.Path})
		}
	case "C":
		if f, ok := v.currentFile(); ok && v.focusDiff {
			line := int64(v.lineIdx)
			a.Events().SendApp(event.CommentsOpen{ReviewID: v.reviewID, FilePath: f.Path, Line: &line})
		}
	case "r":
		a.Events().SendApp(event.ReviewRefreshOpen{ReviewID: v.reviewID})
	case "?":
		a.Events().SendApp(event.HelpOpen{Bindings: v.Keybindings()})
	}
	return nil
}

func (v *ReviewDetailsView) HandleApp(_ *app.App, ev event.AppEvent) {
	switch ev := ev.(type) {
	case event.ReviewLoaded:
		if ev.Review.ID == v.reviewID {
			r := ev.Review
			v.review = &r
			v.notFound = false
			v.loadErr = ""
		}
	case event.ReviewNotFound:
		if ev.ReviewID == v.reviewID {
			v.notFound = true
		}
	case event.ReviewLoadErr:
		if ev.ReviewID == v.reviewID {
			v.loadErr = ev.Reason
		}
	case event.DiffState:
		if ev.ReviewID == v.reviewID {
			v.diff = ev.State
			v.clamp()
		}
	case event.FileViewsState:
		if ev.ReviewID != v.reviewID {
			return
		}
		if files, ok := ev.State.Value(); ok {
			v.viewed = make(map[string]bool, len(files))
			for _, f := range files {
				v.viewed[f] = true
			}
		}
	case event.CommentCountsState:
		if ev.ReviewID != v.reviewID {
			return
		}
		if counts, ok := ev.State.Value(); ok {
			v.counts = counts
		}
	case event.FileViewToggled:
		if ev.ReviewID == v.reviewID {
			v.status = ""
		}
	case event.FileViewToggleErr:
		if ev.ReviewID == v.reviewID {
			v.status = "toggle viewed failed: " + ev.Reason
		}
	case event.ReviewRefreshErr:
		if ev.ReviewID == v.reviewID {
			v.status = "refresh failed: " + ev.Reason
		}
	}
}

func (v *ReviewDetailsView) currentFile() (vcs.DiffFile, bool) {
	set, ok := v.diff.Value()
	if !ok || len(set.Files) == 0 {
		return vcs.DiffFile{}, false
	}
	return set.Files[v.fileIdx], true
}

func (v *ReviewDetailsView) move(delta int) {
	if v.focusDiff {
		f, ok := v.currentFile()
		if !ok || len(f.Lines) == 0 {
			return
		}
		v.lineIdx = clampIdx(v.lineIdx+delta, len(f.Lines))
		return
	}
	set, ok := v.diff.Value()
	if !ok || len(set.Files) == 0 {
		return
	}
	prev := v.fileIdx
	v.fileIdx = clampIdx(v.fileIdx+delta, len(set.Files))
	if v.fileIdx != prev {
		v.lineIdx = 0
	}
}

func (v *ReviewDetailsView) clamp() {
	set, ok := v.diff.Value()
	if !ok || len(set.Files) == 0 {
		v.fileIdx, v.lineIdx = 0, 0
		v.focusDiff = false
		return
	}
	v.fileIdx = clampIdx(v.fileIdx, len(set.Files))
	v.lineIdx = clampIdx(v.lineIdx, max(1, len(set.Files[v.fileIdx].Lines)))
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (v *ReviewDetailsView) Render(_ *app.App, width, height int) string {
	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")

	switch {
	case v.notFound:
		b.WriteString(theme.Error.Render("review not found"))
	case v.loadErr != "":
		b.WriteString(theme.Error.Render("failed to load review: " + v.loadErr))
	default:
		b.WriteString(v.renderPanes(width, height))
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(theme.Error.Render(v.status))
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpDesc.Render("tab pane  v viewed  c/C comments  r refresh  esc back"))
	return b.String()
}

func (v *ReviewDetailsView) renderHeader() string {
	if v.review == nil {
		return theme.Muted.Render("loading review...")
	}
	r := v.review
	head := theme.Header.Render(r.Title) + "  " +
		theme.Muted.Render(fmt.Sprintf("%s..%s", r.BaseBranch, r.TargetBranch))
	if r.BaseSHA != nil && r.TargetSHA != nil {
		head += "  " + theme.Muted.Render(fmt.Sprintf("%.8s..%.8s", *r.BaseSHA, *r.TargetSHA))
	}
	if r.BranchesDrifted() {
		head += "  " + theme.Warn.Render("[branch missing]")
	}
	return head
}

func (v *ReviewDetailsView) renderPanes(width, height int) string {
	switch v.diff.Phase() {
	case event.PhaseInit, event.PhaseLoading:
		return theme.Muted.Render("loading diff...")
	case event.PhaseError:
		reason, _ := v.diff.Err()
		return theme.Error.Render("diff unavailable: " + reason)
	}

	set, _ := v.diff.Value()
	if len(set.Files) == 0 {
		return theme.Muted.Render("no changes between branches")
	}

	var files strings.Builder
	for i, f := range set.Files {
		line := v.fileIndicators(f.Path) + " " + f.Path
		switch {
		case i == v.fileIdx && !v.focusDiff:
			files.WriteString(theme.Selected.Render("> " + line))
		case i == v.fileIdx:
			files.WriteString(theme.Text.Render("* " + line))
		default:
			files.WriteString(theme.Text.Render("  " + line))
		}
		files.WriteString("\n")
	}

	fileBox, diffBox := theme.FocusedBox, theme.Box
	if v.focusDiff {
		fileBox, diffBox = theme.Box, theme.FocusedBox
	}

	paneHeight := max(4, height-8)
	left := fileBox.Width(max(20, width/3)).Height(paneHeight).Render(files.String())
	right := diffBox.Width(max(20, width-width/3-6)).Height(paneHeight).
		Render(v.renderDiff(set.Files[v.fileIdx], paneHeight))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (v *ReviewDetailsView) fileIndicators(path string) string {
	viewed := " "
	if v.viewed[path] {
		viewed = theme.Success.Render("✓")
	}
	comment := " "
	if slices.Contains(v.counts.FilesWithComments, path) {
		if slices.Contains(v.counts.FilesAllResolved, path) {
			comment = theme.Muted.Render("○")
		} else {
			comment = theme.Warn.Render("●")
		}
	}
	return viewed + comment
}

func (v *ReviewDetailsView) renderDiff(f vcs.DiffFile, paneHeight int) string {
	if len(f.Lines) == 0 {
		return theme.Muted.Render("empty diff")
	}

	// scroll window centered on the focused line
	top := 0
	if v.lineIdx >= paneHeight {
		top = v.lineIdx - paneHeight + 1
	}
	end := min(len(f.Lines), top+paneHeight)

	var b strings.Builder
	for i := top; i < end; i++ {
		line := f.Lines[i]
		style := theme.Text
		switch {
		case strings.HasPrefix(line, "+"):
			style = theme.DiffAdd
		case strings.HasPrefix(line, "-"):
			style = theme.DiffDel
		case strings.HasPrefix(line, "@@"):
			style = theme.Muted
		}
		marker := " "
		if slices.Contains(v.counts.LinesWithComments[f.Path], int64(i)) {
			if slices.Contains(v.counts.LinesAllResolved[f.Path], int64(i)) {
				marker = theme.Muted.Render("○")
			} else {
				marker = theme.Warn.Render("●")
			}
		}
		if i == v.lineIdx && v.focusDiff {
			b.WriteString(theme.Selected.Render(">"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(marker)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
