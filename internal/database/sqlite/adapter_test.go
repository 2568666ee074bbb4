package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
)

func TestDSN(t *testing.T) {
	a := New()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"bare url gets defaults",
			"sqlite://./data.sqlite",
			"./data.sqlite?cache=shared&_journal_mode=WAL&_foreign_keys=1",
		},
		{
			"plain path gets defaults",
			"data.sqlite",
			"data.sqlite?cache=shared&_journal_mode=WAL&_foreign_keys=1",
		},
		{
			"existing params are kept",
			"sqlite://data.sqlite?mode=ro",
			"data.sqlite?mode=ro&_foreign_keys=1",
		},
		{
			"explicit foreign_keys wins",
			"sqlite://data.sqlite?_foreign_keys=off",
			"data.sqlite?_foreign_keys=off",
		},
		{
			"short form fk wins",
			"sqlite://data.sqlite?_fk=false",
			"data.sqlite?_fk=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.DSN(tt.url))
		})
	}
}

func TestCreateTableSQL(t *testing.T) {
	a := New()

	table := dataset.Table{
		Name: "feedback",
		Columns: []dataset.Column{
			{Name: "id", Type: "INTEGER", PrimaryKey: true},
			{Name: "student_id", Type: "INTEGER", NotNull: true, References: &dataset.ForeignKey{
				Table: "students", Column: "id", OnDelete: "CASCADE",
			}},
			{Name: "comment", Type: "TEXT"},
		},
	}

	want := `CREATE TABLE "feedback" (
  "id" INTEGER PRIMARY KEY,
  "student_id" INTEGER NOT NULL,
  "comment" TEXT,
  FOREIGN KEY ("student_id") REFERENCES "students"("id") ON DELETE CASCADE
)`
	assert.Equal(t, want, a.CreateTableSQL(table))
}

func TestDropTableSQL(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "students"`, New().DropTableSQL("students"))
}
