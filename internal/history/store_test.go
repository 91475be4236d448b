// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)

	fetchedAt := time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC)
	require.NoError(t, s.Record(Run{
		AuthorID:  "2482441",
		FetchedAt: fetchedAt,
		Total:     42,
		Skipped:   1,
		Status:    StatusOK,
	}))

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, "2482441", r.AuthorID)
	assert.True(t, fetchedAt.Equal(r.FetchedAt))
	assert.Equal(t, 42, r.Total)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, StatusOK, r.Status)
}

func TestRecentNewestFirst(t *testing.T) {
	s := openStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 3; week++ {
		require.NoError(t, s.Record(Run{
			AuthorID:  "2482441",
			FetchedAt: base.AddDate(0, 0, 7*week),
			Total:     40 + week,
			Status:    StatusOK,
		}))
	}

	runs, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 42, runs[0].Total)
	assert.Equal(t, 40, runs[2].Total)
}

func TestRecentHonorsLimit(t *testing.T) {
	s := openStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(Run{AuthorID: "x", FetchedAt: time.Now(), Status: StatusEmpty}))
	}

	runs, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRecentEmptyLog(t *testing.T) {
	s := openStore(t)
	runs, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening finds the existing schema.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Recent(1)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
