package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "profiles", "revoked_tokens", "players", "events", "attendance", "statistics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_EnforcesForeignKeys(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO players (id, name, owner_id, created_at) VALUES ('p1', 'Ghost', 'missing-user', 0)`)
	assert.Error(t, err, "a player without an existing owner should be rejected")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/hoopsheet.db"

	_, teardown, err := InitDB(path, "", "", "../../migrations")
	require.NoError(t, err)
	teardown()

	db, teardown, err := InitDB(path, "", "", "../../migrations")
	require.NoError(t, err, "re-running migrations on an existing database should succeed")
	defer teardown()
	require.NoError(t, db.Ping())
}

func TestInitDB_MissingMigrations(t *testing.T) {
	_, _, err := InitDB(":memory:", "", "", "./does-not-exist")
	assert.Error(t, err)
}
