package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/fcfs-sim/sim"
)

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestSQLiteStore_FlushOnClose(t *testing.T) {
	// GIVEN a store with two buffered trials (below the batch size)
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Export(scenarioResult(t)))
	require.NoError(t, store.Export(randomResult(t, 25)))
	assert.Equal(t, 0, countRows(t, store.DB, "trials"))

	// WHEN the store is closed
	require.NoError(t, store.Close())

	// THEN both trials and all customers are persisted
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 2, countRows(t, db, "trials"))
	assert.Equal(t, 28, countRows(t, db, "customers"))

	var avg, lunch float64
	var servers int
	require.NoError(t, db.QueryRow(
		"SELECT avg_queue, servers, lunch_hours FROM trials WHERE customers = 3").Scan(&avg, &servers, &lunch))
	assert.InDelta(t, 7.0/3.0, avg, 1e-9)
	assert.Equal(t, 1, servers)
	assert.Equal(t, 0.5, lunch)

	var queue float64
	require.NoError(t, db.QueryRow(
		"SELECT c.queue FROM customers c JOIN trials t ON c.sheet = t.sheet WHERE t.customers = 3 AND c.id = 1").Scan(&queue))
	assert.Equal(t, 7.0, queue)
}

func TestSQLiteStore_FlushesFullBatch(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	res := randomResult(t, 10)
	for i := 0; i < store.batchSize; i++ {
		require.NoError(t, store.Export(res))
	}

	assert.Equal(t, store.batchSize, countRows(t, store.DB, "trials"))
	assert.Empty(t, store.pending)
}

func TestSQLiteStore_UnstableReferenceStoredAsNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	// 3 customers over 1800s with 10s service is stable; use an overloaded reference instead
	res := scenarioResult(t)
	res.Reference = sim.ErlangC(1, 1, 10)
	require.False(t, res.Reference.Stable)
	require.NoError(t, store.Export(res))
	require.NoError(t, store.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	var erlang sql.NullFloat64
	require.NoError(t, db.QueryRow("SELECT erlang_mdc FROM trials").Scan(&erlang))
	assert.False(t, erlang.Valid)
}

func TestSQLiteStore_WriteAfterClose(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.Error(t, store.Export(scenarioResult(t)))
	assert.NoError(t, store.Flush())
	assert.NoError(t, store.Close())
}
