package database

import (
	"github.com/Masterminds/squirrel"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
)

// Adapter captures the engine-specific surface the fixture lifecycle needs:
// driver registration, DSN translation, identifier quoting, DDL generation,
// and driver error classification. Adapters are stateless; all I/O runs
// through the *sql.DB handed out by Open.
type Adapter interface {
	// DriverName reports the database/sql driver to open connections with.
	DriverName() string

	// DSN translates a connection URL into the form the driver expects.
	DSN(url string) string

	// Quote wraps an identifier in the engine's quoting style.
	Quote(name string) string

	// Builder returns a statement builder configured with the engine's
	// placeholder format.
	Builder() squirrel.StatementBuilderType

	// CreateTableSQL generates the CREATE TABLE statement for a table.
	CreateTableSQL(t dataset.Table) string

	// DropTableSQL generates a conditional drop; absence of the table is
	// never an error.
	DropTableSQL(name string) string

	// IsUndefinedTable reports whether err means the statement's target
	// table does not exist.
	IsUndefinedTable(err error) bool

	// Normalize rewraps well-known driver error codes with a readable
	// message, preserving the original error for unwrapping. Unknown
	// errors pass through untouched.
	Normalize(err error) error

	// MaxBatchRows caps multi-row inserts; zero means no engine cap.
	MaxBatchRows() int
}
