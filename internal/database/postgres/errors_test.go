package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUndefinedTable(t *testing.T) {
	a := New()

	undefined := &pgconn.PgError{Code: codeUndefinedTable, Message: `relation "ghosts" does not exist`}
	assert.True(t, a.IsUndefinedTable(undefined))
	assert.True(t, a.IsUndefinedTable(fmt.Errorf("exec failed: %w", undefined)))

	assert.False(t, a.IsUndefinedTable(&pgconn.PgError{Code: codeUniqueViolation}))
	assert.False(t, a.IsUndefinedTable(errors.New("plain error")))
	assert.False(t, a.IsUndefinedTable(nil))
}

func TestNormalize(t *testing.T) {
	a := New()

	tests := []struct {
		code string
		want string
	}{
		{codeUndefinedTable, "table does not exist"},
		{codeUndefinedColumn, "column does not exist"},
		{codeSyntaxError, "syntax error"},
		{codeNotNullViolation, "not-null constraint"},
		{codeForeignKeyViolation, "foreign key constraint"},
		{codeUniqueViolation, "unique constraint"},
		{codeConnectionFailure, "connection failure"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			cause := &pgconn.PgError{Code: tt.code, Message: "details"}
			got := a.Normalize(cause)
			require.Error(t, got)
			assert.Contains(t, got.Error(), tt.want)

			var pgErr *pgconn.PgError
			require.True(t, errors.As(got, &pgErr), "original driver error must stay unwrappable")
			assert.Equal(t, tt.code, pgErr.Code)
		})
	}
}

func TestNormalizePassesThroughUnknownErrors(t *testing.T) {
	a := New()

	plain := errors.New("broken pipe")
	assert.Same(t, plain, a.Normalize(plain))

	unknownCode := &pgconn.PgError{Code: "0A000"}
	assert.Same(t, error(unknownCode), a.Normalize(unknownCode))
}
