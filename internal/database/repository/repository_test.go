package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/gitreview/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func testTime(offset int) time.Time {
	return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Minute)
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func insertReview(t *testing.T, repo *ReviewRepo, id string, created time.Time) Review {
	t.Helper()
	rv := Review{
		ID:           id,
		Title:        "review " + id,
		BaseBranch:   "main",
		TargetBranch: "feature",
		BaseSHA:      strPtr("aaaa1111"),
		TargetSHA:    strPtr("bbbb2222"),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, repo.Insert(context.Background(), rv))
	return rv
}
