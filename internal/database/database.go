package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the target behind a uniform database/sql surface and
// verifies the connection with a ping before handing it out.
func Open(ctx context.Context, adapter Adapter, url string) (*sql.DB, error) {
	db, err := sql.Open(adapter.DriverName(), adapter.DSN(url))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
