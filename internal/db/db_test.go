package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/assets"
)

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	conn, err := Open(path)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.Ping())
}

func TestMigrate_EmbeddedIsIdempotent(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(conn, assets.Migrations()))
	require.NoError(t, Migrate(conn, assets.Migrations()))

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestMigrate_OrderAndFailure(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer conn.Close()

	fsys := fstest.MapFS{
		"002_b.sql": {Data: []byte(`INSERT INTO t(v) VALUES ('b');`)},
		"001_a.sql": {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"notes.txt": {Data: []byte(`ignored`)},
	}
	require.NoError(t, Migrate(conn, fsys))

	var v string
	require.NoError(t, conn.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "b", v)

	bad := fstest.MapFS{"003_bad.sql": {Data: []byte(`NOT SQL AT ALL;`)}}
	err = Migrate(conn, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply 003_bad.sql")

	var n int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(1) FROM _migrations WHERE name='003_bad.sql'`).Scan(&n))
	assert.Equal(t, 0, n)
}
