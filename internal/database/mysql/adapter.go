package mysql

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

func (m *Adapter) DriverName() string { return "mysql" }

// sslModes translates URL-style TLS parameters into the driver's tls option.
var sslModes = strings.NewReplacer(
	"ssl-mode=REQUIRED", "tls=skip-verify",
	"ssl-mode=DISABLED", "tls=false",
	"ssl-mode=VERIFY_CA", "tls=true",
	"ssl-mode=VERIFY_IDENTITY", "tls=true",
	"sslmode=require", "tls=skip-verify",
	"sslmode=disable", "tls=false",
	"sslmode=verify-ca", "tls=true",
	"sslmode=verify-full", "tls=true",
)

// DSN accepts either a ready go-sql-driver DSN or a mysql:// URL, which it
// rewrites into the user:pass@tcp(host:port)/db form the driver expects.
func (m *Adapter) DSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}

	dsn := strings.TrimPrefix(url, "mysql://")
	at := strings.LastIndex(dsn, "@")
	if at <= 0 {
		return dsn
	}
	credentials, remainder := dsn[:at], dsn[at+1:]

	slash := strings.Index(remainder, "/")
	if slash <= 0 {
		return dsn
	}
	hostPort, dbAndParams := remainder[:slash], remainder[slash+1:]

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, sslModes.Replace(dbAndParams))
}

func (m *Adapter) Quote(name string) string { return "`" + name + "`" }

func (m *Adapter) Builder() squirrel.StatementBuilderType { return m.qb }

func (m *Adapter) MaxBatchRows() int { return 0 }

func (m *Adapter) DropTableSQL(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS `%s`", name)
}

func (m *Adapter) CreateTableSQL(t dataset.Table) string {
	var lines []string
	var foreignKeys []string

	for _, column := range t.Columns {
		if ref := column.References; ref != nil {
			fk := fmt.Sprintf("  FOREIGN KEY (`%s`) REFERENCES `%s`(`%s`)",
				column.Name, ref.Table, ref.Column)
			if ref.OnDelete != "" {
				fk += fmt.Sprintf(" ON DELETE %s", ref.OnDelete)
			}
			foreignKeys = append(foreignKeys, fk)
		}
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE `%s` (", t.Name))

	for i, column := range t.Columns {
		comma := ","
		if i == len(t.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  `%s` %s%s", column.Name, m.formatColumn(column), comma))
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

func (m *Adapter) formatColumn(column dataset.Column) string {
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
