package service

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/gitreview/internal/app"
	"github.com/jask/gitreview/internal/clock"
	"github.com/jask/gitreview/internal/database"
	"github.com/jask/gitreview/internal/database/repository"
	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/vcs"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

// newTestContext wires a service context against an in-memory database and
// a git runner pointed at an empty directory, so every branch lookup
// reports the branch as missing.
func newTestContext(t *testing.T) *app.ServiceContext {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	return &app.ServiceContext{
		Reviews:   repository.NewReviewRepo(db),
		Comments:  repository.NewCommentRepo(db),
		FileViews: repository.NewFileViewRepo(db),
		Git:       vcs.NewRunner(t.TempDir()),
		Events:    event.NewBus(),
		Clock:     clock.Fixed{T: testNow},
	}
}

// appEvents drains the bus and returns the queued application events.
func appEvents(t *testing.T, bus *event.Bus) []event.AppEvent {
	t.Helper()
	var out []event.AppEvent
	for {
		ev, ok := bus.TryNext()
		if !ok {
			return out
		}
		require.Equal(t, event.KindApp, ev.Kind)
		out = append(out, ev.App)
	}
}

func seedReview(t *testing.T, sc *app.ServiceContext, id string, baseSHA, targetSHA *string) {
	t.Helper()
	require.NoError(t, sc.Reviews.Insert(context.Background(), repository.Review{
		ID:           id,
		Title:        "review " + id,
		BaseBranch:   "main",
		TargetBranch: "feature",
		BaseSHA:      baseSHA,
		TargetSHA:    targetSHA,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}))
}

func sha(s string) *string { return &s }

// gitRepo initializes a real repository with one commit on main.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	git("init", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hello\n"), 0o644))
	git("add", ".")
	git("commit", "-m", "initial")
	return dir
}
