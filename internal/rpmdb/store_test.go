package rpmdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josevnz/rpmq/pkg/query"
	"github.com/josevnz/rpmq/pkg/types"
)

func fixturePackages() []types.Package {
	return []types.Package{
		{Name: "A", Version: "1.0", Size: 300},
		{Name: "B", Version: "2.0", Size: 100},
		{Name: "C", Version: "3.0", Size: 500},
	}
}

// drain reads every package from cur.
func drain(t *testing.T, cur types.Cursor) []types.Package {
	t.Helper()
	var got []types.Package
	for {
		pkg, ok, err := cur.Next()
		require.NoError(t, err)
		if !ok {
			return got
		}
		got = append(got, pkg)
	}
}

func TestAvailable(t *testing.T) {
	// The driver is registered by this package's own import.
	require.NoError(t, Available())
}

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewStore("").Path())
	assert.Equal(t, "/tmp/other.sqlite", NewStore("/tmp/other.sqlite").Path())
}

func TestBegin_MissingDatabase(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.sqlite"))
	_, err := store.Begin()
	require.ErrorIs(t, err, types.ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "--db")
}

func TestMatch(t *testing.T) {
	path := createFixtureDB(t, fixturePackages())
	store := NewStore(path)

	t.Run("empty name matches all in insertion order", func(t *testing.T) {
		tx, err := store.Begin()
		require.NoError(t, err)
		defer tx.Close()

		cur, err := tx.Match("")
		require.NoError(t, err)
		defer cur.Close()

		got := drain(t, cur)
		require.Len(t, got, 3)
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, "B", got[1].Name)
		assert.Equal(t, "C", got[2].Name)
	})

	t.Run("name filters exactly", func(t *testing.T) {
		tx, err := store.Begin()
		require.NoError(t, err)
		defer tx.Close()

		cur, err := tx.Match("B")
		require.NoError(t, err)
		defer cur.Close()

		got := drain(t, cur)
		require.Len(t, got, 1)
		assert.Equal(t, "B", got[0].Name)
		assert.Equal(t, int64(100), got[0].Size)
	})

	t.Run("unmatched name yields nothing", func(t *testing.T) {
		tx, err := store.Begin()
		require.NoError(t, err)
		defer tx.Close()

		cur, err := tx.Match("zzz")
		require.NoError(t, err)
		defer cur.Close()

		assert.Empty(t, drain(t, cur))
	})
}

func TestCount(t *testing.T) {
	path := createFixtureDB(t, fixturePackages())
	store := NewStore(path)

	tx, err := store.Begin()
	require.NoError(t, err)
	defer tx.Close()

	t.Run("unfiltered", func(t *testing.T) {
		n, err := tx.Count("")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("filtered", func(t *testing.T) {
		n, err := tx.Count("C")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("unmatched", func(t *testing.T) {
		n, err := tx.Count("zzz")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestTxClose(t *testing.T) {
	path := createFixtureDB(t, fixturePackages())
	store := NewStore(path)

	tx, err := store.Begin()
	require.NoError(t, err)

	require.NoError(t, tx.Close())
	require.NoError(t, tx.Close(), "close must be idempotent")

	_, err = tx.Match("")
	require.ErrorIs(t, err, types.ErrQueryClosed)
	_, err = tx.Count("")
	require.ErrorIs(t, err, types.ErrQueryClosed)
}

func TestUndecodableRow(t *testing.T) {
	path := createFixtureDB(t, fixturePackages())

	// Corrupt one row directly.
	db, err := openRW(path)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE Packages SET blob = X'00' WHERE hnum = 2")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store := NewStore(path)
	tx, err := store.Begin()
	require.NoError(t, err)
	defer tx.Close()

	cur, err := tx.Match("")
	require.NoError(t, err)
	defer cur.Close()

	_, _, err = cur.Next() // row 1 is fine
	require.NoError(t, err)
	_, _, err = cur.Next() // row 2 is corrupt
	require.ErrorIs(t, err, types.ErrQueryFailed)
}

// TestQueryOverRealStore runs the query layer end to end against a fixture
// database file.
func TestQueryOverRealStore(t *testing.T) {
	path := createFixtureDB(t, fixturePackages())
	store := NewStore(path)

	q, err := query.Open(store, query.Spec{Limit: 2})
	require.NoError(t, err)
	defer q.Close()

	var got []types.Package
	for pkg, err := range q.Records() {
		require.NoError(t, err)
		got = append(got, pkg)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "C", got[0].Name)
	assert.Equal(t, "A", got[1].Name)

	total, err := q.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
