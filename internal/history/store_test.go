package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Record(Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Command:   "write",
			Platform:  "slack",
			Runtime:   "claude-code",
			ModelA:    "openai/gpt-5.2",
			ModelB:    "google/gemini-3.1-pro-preview",
			FinishA:   "stop",
			FinishB:   "length",
			ElapsedA:  3.25,
			ElapsedB:  8.5,
			Retried:   i == 2,
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	assert.True(t, entries[0].Retried)
	assert.NotEmpty(t, entries[0].ID, "missing id is generated")
	assert.Equal(t, "write", entries[0].Command)
	assert.Equal(t, "openai/gpt-5.2", entries[0].ModelA)
	assert.Equal(t, 3.25, entries[0].ElapsedA)
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(Entry{Command: "recommend"}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
