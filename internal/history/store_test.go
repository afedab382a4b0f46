package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, outcome := range []string{"success", "warning", "failed"} {
		require.NoError(t, store.Append(ctx, Record{
			ID:        string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  250 * time.Millisecond,
			Source:    "./docs",
			Output:    "./output",
			Pages:     3,
			Assets:    1,
			Warnings:  i,
			Strict:    i == 2,
			Outcome:   outcome,
		}))
	}

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Newest first.
	assert.Equal(t, "failed", records[0].Outcome)
	assert.True(t, records[0].Strict)
	assert.Equal(t, "success", records[2].Outcome)
	assert.Equal(t, 250*time.Millisecond, records[2].Duration)
	assert.Equal(t, base, records[2].StartedAt.UTC())
}

func TestRecentHonorsLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, Record{
			ID:        string(rune('a' + i)),
			StartedAt: time.Now().Add(time.Duration(i) * time.Second),
			Outcome:   "success",
		}))
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Re-opening an existing database must not fail.
	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
