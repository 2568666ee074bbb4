package mysql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func mysqlErr(number uint16, message string) *mysql.MySQLError {
	return &mysql.MySQLError{Number: number, Message: message}
}

func TestIsUndefinedTable(t *testing.T) {
	a := New()

	assert.True(t, a.IsUndefinedTable(mysqlErr(errBadTable, "Unknown table 'students'")))
	assert.True(t, a.IsUndefinedTable(mysqlErr(errNoSuchTable, "Table 'app.students' doesn't exist")))
	assert.True(t, a.IsUndefinedTable(fmt.Errorf("drop failed: %w", mysqlErr(errBadTable, "Unknown table 'students'"))))

	assert.False(t, a.IsUndefinedTable(mysqlErr(errDupEntry, "Duplicate entry '1' for key 'PRIMARY'")))
	assert.False(t, a.IsUndefinedTable(errors.New("unknown table")))
	assert.False(t, a.IsUndefinedTable(nil))
}

func TestNormalize(t *testing.T) {
	a := New()

	tests := []struct {
		name   string
		number uint16
		want   string
	}{
		{"missing table on drop", errBadTable, "table does not exist"},
		{"missing table on insert", errNoSuchTable, "table does not exist"},
		{"missing column", errBadFieldError, "column does not exist"},
		{"duplicate key", errDupEntry, "unique constraint violated"},
		{"orphan child row", errNoReferencedRow, "foreign key constraint violated"},
		{"referenced parent row", errRowIsReferenced, "row is referenced by another table"},
		{"bad credentials", errAccessDenied, "access denied"},
		{"missing database", errBadDB, "unknown database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mysqlErr(tt.number, "server message")
			got := a.Normalize(in)

			assert.ErrorContains(t, got, tt.want)

			var myErr *mysql.MySQLError
			assert.True(t, errors.As(got, &myErr))
			assert.Equal(t, tt.number, myErr.Number)
		})
	}
}

func TestNormalizePassesThroughUnknownErrors(t *testing.T) {
	a := New()

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, a.Normalize(plain))

	deadlock := mysqlErr(1213, "Deadlock found when trying to get lock")
	assert.Same(t, error(deadlock), a.Normalize(deadlock))
}
