package sqlite

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
)

type Adapter struct {
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) DriverName() string { return "sqlite3" }

// DSN strips the sqlite:// prefix and applies the connection defaults.
// Foreign key enforcement is off by default in SQLite, so it is switched on
// here unless the URL already takes a position on it.
func (s *Adapter) DSN(url string) string {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?cache=shared&_journal_mode=WAL"
	}
	if !strings.Contains(dbPath, "_foreign_keys=") && !strings.Contains(dbPath, "_fk=") {
		dbPath += "&_foreign_keys=1"
	}
	return dbPath
}

func (s *Adapter) Quote(name string) string { return `"` + name + `"` }

func (s *Adapter) Builder() squirrel.StatementBuilderType { return s.qb }

// MaxBatchRows is 1: SQLite doesn't handle multi-row inserts well, so
// rows go in one by one.
func (s *Adapter) MaxBatchRows() int { return 1 }

func (s *Adapter) DropTableSQL(name string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, name)
}

func (s *Adapter) CreateTableSQL(t dataset.Table) string {
	var lines []string
	var foreignKeys []string

	for _, column := range t.Columns {
		if ref := column.References; ref != nil {
			fk := fmt.Sprintf(`  FOREIGN KEY ("%s") REFERENCES "%s"("%s")`,
				column.Name, ref.Table, ref.Column)
			if ref.OnDelete != "" {
				fk += fmt.Sprintf(" ON DELETE %s", ref.OnDelete)
			}
			foreignKeys = append(foreignKeys, fk)
		}
	}

	lines = append(lines, fmt.Sprintf(`CREATE TABLE "%s" (`, t.Name))

	for i, column := range t.Columns {
		comma := ","
		if i == len(t.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf(`  "%s" %s%s`, column.Name, s.formatColumn(column), comma))
	}

	for i, fk := range foreignKeys {
		comma := ","
		if i == len(foreignKeys)-1 {
			comma = ""
		}
		lines = append(lines, fk+comma)
	}

	lines = append(lines, ")")
	return strings.Join(lines, "\n")
}

func (s *Adapter) formatColumn(column dataset.Column) string {
	parts := []string{column.Type}

	if column.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if column.Unique && !column.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	if column.NotNull && !column.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}
	if column.Default != "" {
		parts = append(parts, "DEFAULT "+column.Default)
	}

	return strings.Join(parts, " ")
}
