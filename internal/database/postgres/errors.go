package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes surfaced by the lifecycle's drop/create/insert statements.
const (
	codeUndefinedTable      = "42P01"
	codeUndefinedColumn     = "42703"
	codeSyntaxError         = "42601"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeConnectionFailure   = "08006"
)

func (p *Adapter) IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}

func (p *Adapter) Normalize(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUndefinedTable:
		return fmt.Errorf("table does not exist: %w", err)
	case codeUndefinedColumn:
		return fmt.Errorf("column does not exist: %w", err)
	case codeSyntaxError:
		return fmt.Errorf("syntax error in generated statement: %w", err)
	case codeNotNullViolation:
		return fmt.Errorf("not-null constraint violated: %w", err)
	case codeForeignKeyViolation:
		return fmt.Errorf("foreign key constraint violated: %w", err)
	case codeUniqueViolation:
		return fmt.Errorf("unique constraint violated: %w", err)
	case codeConnectionFailure:
		return fmt.Errorf("connection failure: %w", err)
	default:
		return err
	}
}
