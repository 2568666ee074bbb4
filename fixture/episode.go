package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/internal/database"
)

// episode executes one seed against an open connection: conditional drops
// of every declared table (children first, so foreign keys don't block the
// drops), then create+insert per table in declaration order.
type episode struct {
	adapter database.Adapter
	db      *sql.DB
	batch   int
	logger  zerolog.Logger
}

func (e *episode) run(ctx context.Context, ds *dataset.Dataset) error {
	tables := ds.Tables

	for i := len(tables) - 1; i >= 0; i-- {
		name := tables[i].Name
		e.logger.Debug().Str("step", string(StepDrop)).Str("table", name).Msg("dropping table")
		if err := e.dropIfExists(ctx, name); err != nil {
			return &SeedError{Step: StepDrop, Table: name, Err: err}
		}
	}

	var created []string
	for _, t := range tables {
		e.logger.Debug().Str("step", string(StepCreate)).Str("table", t.Name).Msg("creating table")
		if _, err := e.db.ExecContext(ctx, e.adapter.CreateTableSQL(t)); err != nil {
			e.cleanup(ctx, created)
			return &SeedError{Step: StepCreate, Table: t.Name, Err: e.adapter.Normalize(err)}
		}
		created = append(created, t.Name)

		rows := ds.RowsFor(t.Name)
		e.logger.Debug().Str("step", string(StepInsert)).Str("table", t.Name).Int("rows", len(rows)).Msg("inserting rows")
		if err := e.insert(ctx, t, rows); err != nil {
			e.cleanup(ctx, created)
			return &SeedError{Step: StepInsert, Table: t.Name, Err: err}
		}
	}

	return nil
}

// dropIfExists tolerates exactly one driver condition: the table not being
// there. Anything else is a real failure.
func (e *episode) dropIfExists(ctx context.Context, name string) error {
	if _, err := e.db.ExecContext(ctx, e.adapter.DropTableSQL(name)); err != nil && !e.adapter.IsUndefinedTable(err) {
		return e.adapter.Normalize(err)
	}
	return nil
}

// insert writes the table's rows in their declared relative order, batched
// into parameterized multi-row statements. Consecutive rows sharing the
// same column set ride in one statement; a row with a different column set
// starts a new one, so declared order is never reshuffled.
func (e *episode) insert(ctx context.Context, t dataset.Table, rows []dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}

	limit := e.batch
	if max := e.adapter.MaxBatchRows(); max > 0 && max < limit {
		limit = max
	}

	var (
		cols  []string
		batch []dataset.Row
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := e.execInsert(ctx, t.Name, cols, batch)
		batch = batch[:0]
		return err
	}

	for _, row := range rows {
		rowCols := columnsFor(t, row)
		if !slices.Equal(rowCols, cols) || len(batch) >= limit {
			if err := flush(); err != nil {
				return err
			}
			cols = rowCols
		}
		batch = append(batch, row)
	}
	return flush()
}

// columnsFor lists the row's columns in the table's declared column order,
// so parameter order is stable no matter how the row map iterates.
func columnsFor(t dataset.Table, row dataset.Row) []string {
	cols := make([]string, 0, len(row))
	for _, c := range t.Columns {
		if _, ok := row[c.Name]; ok {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

func (e *episode) execInsert(ctx context.Context, table string, cols []string, batch []dataset.Row) error {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = e.adapter.Quote(c)
	}

	ib := e.adapter.Builder().Insert(e.adapter.Quote(table)).Columns(quoted...)
	for _, row := range batch {
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = row[c]
		}
		ib = ib.Values(values...)
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert statement: %w", err)
	}
	if _, err := e.db.ExecContext(ctx, query, args...); err != nil {
		return e.adapter.Normalize(err)
	}
	return nil
}

// cleanup drops whatever a failed seed managed to create, newest first.
// Best-effort: a failure here is logged and the original error still wins.
func (e *episode) cleanup(ctx context.Context, created []string) {
	ctx = context.WithoutCancel(ctx)
	for i := len(created) - 1; i >= 0; i-- {
		if err := e.dropIfExists(ctx, created[i]); err != nil {
			e.logger.Warn().Err(err).Str("table", created[i]).Msg("cleanup drop failed")
		}
	}
}
