package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"), "test-salt")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIPIsSaltedAndStable(t *testing.T) {
	s := openTestStore(t)
	h := s.HashIP("10.0.0.1")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("10.0.0.1"))
	assert.NotEqual(t, h, s.HashIP("10.0.0.2"))
	assert.NotContains(t, h, "10.0.0.1")

	other, err := Open(filepath.Join(t.TempDir(), "other.db"), "")
	require.NoError(t, err)
	defer other.Close()
	assert.NotEqual(t, h, other.HashIP("10.0.0.1"))
}

func TestRecordAndSummary(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := []Event{
		{Command: "help", Recognized: true, IP: "1.1.1.1"},
		{Command: "projects", Recognized: true, IP: "1.1.1.1"},
		{Command: "help", Recognized: true, IP: "2.2.2.2"},
		{Command: "sudo", Recognized: false, IP: "2.2.2.2"},
	}
	for _, ev := range events {
		require.NoError(t, s.Record(ctx, ev))
	}

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, sum.Total)
	assert.EqualValues(t, 2, sum.UniqueVisitors)
	assert.EqualValues(t, 4, sum.Today)
	assert.EqualValues(t, 1, sum.NotFound)
	assert.Equal(t, []Count{{Command: "help", Count: 2}, {Command: "projects", Count: 1}}, sum.Commands)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	require.NoError(t, s.Record(ctx, Event{Command: "about", Recognized: true, IP: "a"}))

	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, s.Record(ctx, Event{Command: "skills", Recognized: true, IP: "b"}))

	n, err := s.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sum.Total)
	assert.Equal(t, "skills", sum.Commands[0].Command)
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Record(context.Background(), Event{Command: "help"}), ErrClosed)
	_, err := s.Summary(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
