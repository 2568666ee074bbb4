package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
)

type Adapter struct {
	qb squirrel.StatementBuilderType
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) DriverName() string { return "pgx" }

// DSN passes the URL through; the pgx stdlib driver accepts both
// postgres:// URLs and keyword DSNs.
func (p *Adapter) DSN(url string) string { return url }

func (p *Adapter) Quote(name string) string { return pq.QuoteIdentifier(name) }

func (p *Adapter) Builder() squirrel.StatementBuilderType { return p.qb }

func (p *Adapter) MaxBatchRows() int { return 0 }

func (p *Adapter) DropTableSQL(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(name))
}

func (p *Adapter) CreateTableSQL(t dataset.Table) string {
	var lines []string
	var foreignKeys []string

	for _, column := range t.Columns {
		if ref := column.References; ref != nil {
			fk := fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
				pq.QuoteIdentifier(column.Name), pq.QuoteIdentifier(ref.Table), pq.QuoteIdentifier(ref.Column))
			if ref.OnDelete != "" {
				fk += fmt.Sprintf(" ON DELETE %s", ref.OnDelete)
			}
			foreignKeys = append(foreignKeys, fk)
		}
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", pq.QuoteIdentifier(t.Name)))

	for i, column := range t.Columns {
		comma := ","
		if i == len(t.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  %s %s%s", pq.QuoteIdentifier(column.Name), p.formatColumn(column), comma))
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

func (p *Adapter) formatColumn(column dataset.Column) string {
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
