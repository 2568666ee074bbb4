package sqlite

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a throwaway database file through the adapter's own DSN,
// so foreign key enforcement is on.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "errors.db")
	db, err := sql.Open("sqlite3", New().DSN("sqlite://"+path))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func TestIsUndefinedTable(t *testing.T) {
	a := New()
	db := openTestDB(t)

	_, err := db.Exec("DROP TABLE students")
	require.Error(t, err)
	assert.True(t, a.IsUndefinedTable(err))

	_, err = db.Exec("INSERT INTO students (id) VALUES (1)")
	require.Error(t, err)
	assert.True(t, a.IsUndefinedTable(err))

	_, err = db.Exec("CREATE TABLE students (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO students (missing) VALUES (1)")
	require.Error(t, err)
	assert.False(t, a.IsUndefinedTable(err))

	assert.False(t, a.IsUndefinedTable(errors.New("no such table: students")))
	assert.False(t, a.IsUndefinedTable(nil))
}

func TestNormalizeConstraintViolations(t *testing.T) {
	a := New()
	db := openTestDB(t)

	_, err := db.Exec(`CREATE TABLE students (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE feedback (
		id INTEGER PRIMARY KEY,
		student_id INTEGER NOT NULL,
		FOREIGN KEY (student_id) REFERENCES students(id)
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO students (id, name) VALUES (1, 'A')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO feedback (id, student_id) VALUES (10, 99)`)
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "foreign key constraint violated")

	_, err = db.Exec(`INSERT INTO students (id, name) VALUES (1, 'dup')`)
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "unique constraint violated")

	_, err = db.Exec(`INSERT INTO students (id, name) VALUES (2, NULL)`)
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "not-null constraint violated")
}

func TestNormalizeSchemaErrors(t *testing.T) {
	a := New()
	db := openTestDB(t)

	_, err := db.Exec("SELECT * FROM missing")
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "table does not exist")

	_, err = db.Exec("CREATE TABLE students (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO students (nope) VALUES (1)")
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "column does not exist")

	_, err = db.Exec("SELECT nope FROM students")
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "column does not exist")

	_, err = db.Exec("CREATE TABEL broken (id INTEGER)")
	require.Error(t, err)
	assert.ErrorContains(t, a.Normalize(err), "syntax error in generated statement")
}

func TestNormalizePassesThroughUnknownErrors(t *testing.T) {
	a := New()

	plain := errors.New("database is locked")
	assert.Same(t, plain, a.Normalize(plain))
}
