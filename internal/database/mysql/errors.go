package mysql

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the fixture lifecycle runs into.
const (
	errBadTable        = 1051 // DROP on a missing table
	errNoSuchTable     = 1146 // statement against a missing table
	errDupEntry        = 1062
	errBadFieldError   = 1054
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errAccessDenied    = 1045
	errBadDB           = 1049
)

func (m *Adapter) IsUndefinedTable(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	return myErr.Number == errBadTable || myErr.Number == errNoSuchTable
}

func (m *Adapter) Normalize(err error) error {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return err
	}

	switch myErr.Number {
	case errBadTable, errNoSuchTable:
		return fmt.Errorf("table does not exist: %w", err)
	case errBadFieldError:
		return fmt.Errorf("column does not exist: %w", err)
	case errDupEntry:
		return fmt.Errorf("unique constraint violated: %w", err)
	case errNoReferencedRow:
		return fmt.Errorf("foreign key constraint violated: %w", err)
	case errRowIsReferenced:
		return fmt.Errorf("row is referenced by another table: %w", err)
	case errAccessDenied:
		return fmt.Errorf("access denied: %w", err)
	case errBadDB:
		return fmt.Errorf("unknown database: %w", err)
	default:
		return err
	}
}
