package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/vcs"
)

func newViewApp(root app.View) *app.App {
	return app.New(app.Config{Bus: event.NewBus(), Root: root})
}

func press(t *testing.T, a *app.App, v app.View, key string) {
	t.Helper()
	require.NoError(t, v.HandleKey(a, keyMsg(key)))
}

func nextApp(t *testing.T, a *app.App) event.AppEvent {
	t.Helper()
	ev, ok := a.Events().TryNext()
	require.True(t, ok, "no event queued")
	require.Equal(t, event.KindApp, ev.Kind)
	return ev.App
}

func requireEmpty(t *testing.T, a *app.App) {
	t.Helper()
	ev, ok := a.Events().TryNext()
	require.False(t, ok, "unexpected event %+v", ev)
}

func loadedReviews(ids ...string) event.LoadingState[[]repository.Review] {
	var reviews []repository.Review
	for _, id := range ids {
		reviews = append(reviews, repository.Review{ID: id, Title: "review " + id})
	}
	return event.Loaded(reviews)
}

func TestMainViewNavigationKeys(t *testing.T) {
	t.Parallel()
	v := NewMain(loadedReviews("r1", "r2"))
	a := newViewApp(v)

	press(t, a, v, "n")
	require.IsType(t, event.ReviewCreateOpen{}, nextApp(t, a))

	press(t, a, v, "j")
	press(t, a, v, "enter")
	open, ok := nextApp(t, a).(event.ReviewDetailsOpen)
	require.True(t, ok)
	require.Equal(t, "r2", open.ReviewID, "selection moved before opening")

	press(t, a, v, "d")
	del, ok := nextApp(t, a).(event.ReviewDeleteConfirm)
	require.True(t, ok)
	require.Equal(t, "r2", del.ReviewID)

	press(t, a, v, "q")
	require.IsType(t, event.Quit{}, nextApp(t, a))
	requireEmpty(t, a)
}

func TestMainViewIgnoresSelectionKeysWhileEmpty(t *testing.T) {
	t.Parallel()
	v := NewMain(event.Loaded([]repository.Review(nil)))
	a := newViewApp(v)

	press(t, a, v, "enter")
	press(t, a, v, "d")
	press(t, a, v, "j")
	requireEmpty(t, a)
}

func TestMainViewClampsSelectionOnReload(t *testing.T) {
	t.Parallel()
	v := NewMain(loadedReviews("r1", "r2", "r3"))
	a := newViewApp(v)

	press(t, a, v, "j")
	press(t, a, v, "j")
	v.HandleApp(a, event.StateUpdated{Reviews: loadedReviews("r1")})

	press(t, a, v, "enter")
	open, ok := nextApp(t, a).(event.ReviewDetailsOpen)
	require.True(t, ok)
	require.Equal(t, "r1", open.ReviewID)
}

func TestMainViewFollowsStateBroadcast(t *testing.T) {
	t.Parallel()
	v := NewMain(event.Loading[[]repository.Review]())
	a := newViewApp(v)

	// the raw propagation is absorbed by the state cache, not the list
	v.HandleApp(a, event.ReviewsState{State: loadedReviews("r1")})
	press(t, a, v, "enter")
	requireEmpty(t, a)

	v.HandleApp(a, event.StateUpdated{Reviews: loadedReviews("r1")})
	press(t, a, v, "enter")
	open, ok := nextApp(t, a).(event.ReviewDetailsOpen)
	require.True(t, ok)
	require.Equal(t, "r1", open.ReviewID)
}

func TestCreateViewSubmitsSelectedBranches(t *testing.T) {
	t.Parallel()
	v := NewReviewCreate(event.Loaded([]string{"main", "develop", "feature"}))
	a := newViewApp(v)

	// type a title, then pick develop as the target
	v.HandleKey(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("my review")})
	press(t, a, v, "tab") // base
	press(t, a, v, "tab") // target
	press(t, a, v, "j")
	press(t, a, v, "enter")

	submit, ok := nextApp(t, a).(event.ReviewCreateSubmit)
	require.True(t, ok)
	require.Equal(t, "my review", submit.Data.Title)
	require.Equal(t, "main", submit.Data.BaseBranch)
	require.Equal(t, "develop", submit.Data.TargetBranch)
}

func TestCreateViewTitleFieldSwallowsNavKeys(t *testing.T) {
	t.Parallel()
	v := NewReviewCreate(event.Loaded([]string{"main", "develop"}))
	a := newViewApp(v)

	// j goes into the title while the input has focus
	v.HandleKey(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	press(t, a, v, "enter")

	submit, ok := nextApp(t, a).(event.ReviewCreateSubmit)
	require.True(t, ok)
	require.Equal(t, "j", submit.Data.Title)
	require.Equal(t, "main", submit.Data.BaseBranch, "picker untouched")
}

func TestCreateViewEscCloses(t *testing.T) {
	t.Parallel()
	v := NewReviewCreate(event.Loading[[]string]())
	a := newViewApp(v)

	press(t, a, v, "esc")
	require.IsType(t, event.ViewClose{}, nextApp(t, a))
}

func TestDetailsViewFileAndLineActions(t *testing.T) {
	t.Parallel()
	v := NewReviewDetails("r1")
	a := newViewApp(v)

	v.HandleApp(a, event.DiffState{ReviewID: "r1", State: event.Loaded(vcs.DiffSet{Files: []vcs.DiffFile{
		{Path: "a.go", Lines: []string{"@@", "+added", " ctx"}},
		{Path: "b.go", Lines: []string{"@@", "-removed"}},
	}})})

	press(t, a, v, "v")
	toggle, ok := nextApp(t, a).(event.FileViewToggle)
	require.True(t, ok)
	require.Equal(t, "a.go", toggle.FilePath)

	press(t, a, v, "c")
	fileOpen, ok := nextApp(t, a).(event.CommentsOpen)
	require.True(t, ok)
	require.Equal(t, "a.go", fileOpen.FilePath)
	require.Nil(t, fileOpen.Line)

	// focus the diff, move to the second line, comment on it
	press(t, a, v, "tab")
	press(t, a, v, "j")
	press(t, a, v, "C")
	lineOpen, ok := nextApp(t, a).(event.CommentsOpen)
	require.True(t, ok)
	require.NotNil(t, lineOpen.Line)
	require.Equal(t, int64(1), *lineOpen.Line)

	press(t, a, v, "r")
	refresh, ok := nextApp(t, a).(event.ReviewRefreshOpen)
	require.True(t, ok)
	require.Equal(t, "r1", refresh.ReviewID)
}

func TestDetailsViewIgnoresOtherReviews(t *testing.T) {
	t.Parallel()
	v := NewReviewDetails("r1")
	a := newViewApp(v)

	v.HandleApp(a, event.DiffState{ReviewID: "other", State: event.Loaded(vcs.DiffSet{Files: []vcs.DiffFile{{Path: "x.go"}}})})

	press(t, a, v, "v")
	requireEmpty(t, a)
}

func TestCommentsViewEditorSubmit(t *testing.T) {
	t.Parallel()
	v := NewComments("r1", "a.go", nil)
	a := newViewApp(v)

	press(t, a, v, "i")
	v.HandleKey(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("needs a test")})
	press(t, a, v, "ctrl+s")

	create, ok := nextApp(t, a).(event.CommentCreate)
	require.True(t, ok)
	require.Equal(t, "r1", create.ReviewID)
	require.Equal(t, "a.go", create.FilePath)
	require.Nil(t, create.Line)
	require.Equal(t, "needs a test", create.Content)
}

func TestCommentsViewResolveToggle(t *testing.T) {
	t.Parallel()
	v := NewComments("r1", "a.go", nil)
	a := newViewApp(v)

	v.HandleApp(a, event.CommentsState{State: event.Loaded([]repository.Comment{
		{ID: "c1"}, {ID: "c2"},
	})})

	press(t, a, v, "j")
	press(t, a, v, "x")
	toggle, ok := nextApp(t, a).(event.CommentResolveToggle)
	require.True(t, ok)
	require.Equal(t, "c2", toggle.CommentID)
}

func TestConfirmViewKeys(t *testing.T) {
	t.Parallel()
	v := NewConfirm("delete?", event.ReviewDelete{ReviewID: "r1"}, event.ViewClose{})
	a := newViewApp(v)

	press(t, a, v, "y")
	del, ok := nextApp(t, a).(event.ReviewDelete)
	require.True(t, ok)
	require.Equal(t, "r1", del.ReviewID)
	require.IsType(t, event.ViewClose{}, nextApp(t, a))
	requireEmpty(t, a)

	press(t, a, v, "n")
	require.IsType(t, event.ViewClose{}, nextApp(t, a))
	requireEmpty(t, a)
}

func TestHelpViewReinjectsSelectedKey(t *testing.T) {
	t.Parallel()
	bindings := []event.KeyBinding{
		bind("n", "new review"),
		bind("d", "delete review"),
	}
	v := NewHelp(bindings)
	a := newViewApp(v)

	press(t, a, v, "j")
	press(t, a, v, "enter")

	selected, ok := nextApp(t, a).(event.HelpKeySelected)
	require.True(t, ok)
	require.Equal(t, "d", selected.Key.String())
}

func TestRefreshDialogKeys(t *testing.T) {
	t.Parallel()
	v := NewRefreshDialog("r1")
	a := newViewApp(v)

	press(t, a, v, "y")
	refresh, ok := nextApp(t, a).(event.ReviewRefresh)
	require.True(t, ok)
	require.Equal(t, "r1", refresh.ReviewID)
	require.IsType(t, event.ViewClose{}, nextApp(t, a))

	press(t, a, v, "esc")
	require.IsType(t, event.ViewClose{}, nextApp(t, a))
	requireEmpty(t, a)
}
