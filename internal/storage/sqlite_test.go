package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.voidrun/history.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".voidrun", "history.db"))
	assert.NoError(t, err)
}

func TestSaveAndListSessions(t *testing.T) {
	store := openTestStore(t)

	recs := []SessionRecord{
		{RunID: "run-a", Node: "Start", Outcome: "completed", Kills: 18, Frames: 3600, Credits: 120, XP: 180, Level: 1},
		{RunID: "run-a", Node: "Combat", Outcome: "died", Kills: 4, Frames: 900, Level: 2},
		{RunID: "run-b", Node: "Boss", Outcome: "completed", Kills: 1, Frames: 5000, Credits: 100, Materials: 10, XP: 200, Level: 5},
	}
	for _, r := range recs {
		id, err := store.SaveSession(r)
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	recent, err := store.RecentSessions(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Boss", recent[0].Node, "newest first")
	assert.Equal(t, "Combat", recent[1].Node)
	assert.NotEmpty(t, recent[0].SessionID, "session IDs are generated")
	assert.False(t, recent[0].CreatedAt.IsZero())

	run, err := store.RunSessions("run-a")
	require.NoError(t, err)
	require.Len(t, run, 2)
	assert.Equal(t, "Start", run[0].Node)
	assert.Equal(t, 18, run[0].Kills)
	assert.Equal(t, 3600, run[0].Frames)
	assert.Equal(t, 120, run[0].Credits)
	assert.Equal(t, 180, run[0].XP)
	assert.Equal(t, "died", run[1].Outcome)

	none, err := store.RunSessions("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSaveSessionKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveSession(SessionRecord{SessionID: "fixed", RunID: "r", Node: "Combat", Outcome: "completed"})
	require.NoError(t, err)
	_, err = store.SaveSession(SessionRecord{SessionID: "fixed", RunID: "r", Node: "Combat", Outcome: "completed"})
	assert.Error(t, err, "session IDs are unique")

	recs, err := store.RunSessions("r")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "fixed", recs[0].SessionID)
}

func TestTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{RunID: "shallow", Level: 9, Sector: 1, TiersCleared: 3, EndedReason: "destroyed"},
		{RunID: "deep", Level: 4, Sector: 2, TiersCleared: 12, Kills: 200, EndedReason: "destroyed"},
		{RunID: "deep-low", Level: 3, Sector: 2, TiersCleared: 12, EndedReason: "quit"},
	}
	for _, r := range runs {
		_, err := store.SaveRun(r)
		require.NoError(t, err)
	}

	top, err := store.TopRuns(10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "deep", top[0].RunID)
	assert.Equal(t, "deep-low", top[1].RunID)
	assert.Equal(t, "shallow", top[2].RunID)
	assert.Equal(t, 200, top[0].Kills)

	limited, err := store.TopRuns(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunByID(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(RunRecord{RunID: "abc", Level: 6, Sector: 1, TiersCleared: 7, Credits: 900, Materials: 30, EndedReason: "quit"})
	require.NoError(t, err)

	r, err := store.RunByID("abc")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 6, r.Level)
	assert.Equal(t, 900, r.Credits)
	assert.Equal(t, 30, r.Materials)
	assert.Equal(t, "quit", r.EndedReason)

	missing, err := store.RunByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetStats()
	require.NoError(t, err)
	assert.Zero(t, empty.Runs)
	assert.Zero(t, empty.Sessions)
	assert.True(t, empty.LastPlayed.IsZero())

	for _, r := range []SessionRecord{
		{RunID: "a", Node: "Combat", Outcome: "completed", Kills: 18},
		{RunID: "a", Node: "Combat", Outcome: "completed", Kills: 21},
		{RunID: "a", Node: "Elite", Outcome: "died", Kills: 3},
	} {
		_, err := store.SaveSession(r)
		require.NoError(t, err)
	}
	_, err = store.SaveRun(RunRecord{RunID: "a", Level: 3, TiersCleared: 2, Kills: 42, EndedReason: "destroyed"})
	require.NoError(t, err)

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Runs)
	assert.Equal(t, 3, stats.Sessions)
	assert.Equal(t, 42, stats.TotalKills)
	assert.Equal(t, 2, stats.SessionsWon)
	assert.Equal(t, 1, stats.SessionsLost)
	assert.Equal(t, 3, stats.BestLevel)
	assert.Equal(t, 2, stats.BestTiers)
	assert.False(t, stats.LastPlayed.IsZero())
}
