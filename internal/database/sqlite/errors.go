package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLite reports missing tables as a generic SQLITE_ERROR, so the message
// has to be inspected alongside the code.
func (s *Adapter) IsUndefinedTable(err error) bool {
	var sqErr sqlite3.Error
	if !errors.As(err, &sqErr) {
		return false
	}
	return sqErr.Code == sqlite3.ErrError && strings.Contains(sqErr.Error(), "no such table")
}

func (s *Adapter) Normalize(err error) error {
	var sqErr sqlite3.Error
	if !errors.As(err, &sqErr) {
		return err
	}

	switch sqErr.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("foreign key constraint violated: %w", err)
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("unique constraint violated: %w", err)
	case sqlite3.ErrConstraintNotNull:
		return fmt.Errorf("not-null constraint violated: %w", err)
	}

	if sqErr.Code == sqlite3.ErrError {
		msg := sqErr.Error()
		switch {
		case strings.Contains(msg, "no such table"):
			return fmt.Errorf("table does not exist: %w", err)
		// SELECT says "no such column", INSERT says "has no column named".
		case strings.Contains(msg, "no such column"), strings.Contains(msg, "has no column named"):
			return fmt.Errorf("column does not exist: %w", err)
		case strings.Contains(msg, "syntax error"):
			return fmt.Errorf("syntax error in generated statement: %w", err)
		}
	}

	return err
}
