package fixturetest_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/fixturetest"
)

const classroomYAML = `
name: classroom
tables:
  - name: students
    columns:
      - name: id
        type: INTEGER
        primary_key: true
      - name: name
        type: TEXT
        not_null: true
    rows:
      - {id: 1, name: A}
`

func TestSeedProvidesWorkingHandle(t *testing.T) {
	ds, err := dataset.Load([]byte(classroomYAML))
	require.NoError(t, err)

	h := fixturetest.Seed(t, ds, fixturetest.TempSQLite(t))

	row, err := h.QueryRowContext(context.Background(), `SELECT name FROM students WHERE id = ?`, 1)
	require.NoError(t, err)
	var name string
	require.NoError(t, row.Scan(&name))
	assert.Equal(t, "A", name)
}

func TestSeedTearsDownWithTestCleanup(t *testing.T) {
	ds, err := dataset.Load([]byte(classroomYAML))
	require.NoError(t, err)

	cfg := fixturetest.TempSQLite(t)

	t.Run("seeded", func(t *testing.T) {
		h := fixturetest.Seed(t, ds, cfg)
		_, err := h.ExecContext(context.Background(), `INSERT INTO students (id, name) VALUES (2, 'B')`)
		require.NoError(t, err)
	})

	// The subtest's cleanup stack has run by now.
	db, err := sql.Open("sqlite3", strings.TrimPrefix(cfg.URL, "sqlite://"))
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='students'`).Scan(&n))
	assert.Zero(t, n, "teardown should have dropped the seeded tables")
}
