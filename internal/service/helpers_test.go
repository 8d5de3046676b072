package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/silver_admin/internal/db"
	"github.com/Skotchmaster/silver_admin/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return &repo.GormRepo{DB: gdb}
}

func strPtr(s string) *string { return &s }

func now() time.Time { return time.Now().UTC() }

func farFuture() time.Time { return now().Add(24 * time.Hour) }
