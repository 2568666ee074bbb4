package fixture

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/internal/database"
)

// Handle is the exclusively-owned link to a freshly seeded database. It is
// valid from the moment Seed returns it until Teardown or Close runs;
// every method fails with ErrHandleClosed afterward.
type Handle struct {
	id      string
	ds      *dataset.Dataset
	adapter database.Adapter
	db      *sql.DB

	mu     sync.Mutex
	closed bool
	unlock func()
}

// ID is the episode identifier, also attached to every log line of the
// episode that produced the handle.
func (h *Handle) ID() string { return h.id }

// Dataset is the Dataset this handle was seeded from.
func (h *Handle) Dataset() *dataset.Dataset { return h.ds }

// DB exposes the underlying connection pool for callers that need more
// than the Exec/Query wrappers.
func (h *Handle) DB() (*sql.DB, error) {
	if h.isClosed() {
		return nil, ErrHandleClosed
	}
	return h.db, nil
}

func (h *Handle) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if h.isClosed() {
		return nil, ErrHandleClosed
	}
	return h.db.ExecContext(ctx, query, args...)
}

func (h *Handle) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if h.isClosed() {
		return nil, ErrHandleClosed
	}
	return h.db.QueryContext(ctx, query, args...)
}

func (h *Handle) QueryRowContext(ctx context.Context, query string, args ...any) (*sql.Row, error) {
	if h.isClosed() {
		return nil, ErrHandleClosed
	}
	return h.db.QueryRowContext(ctx, query, args...), nil
}

// Close releases the connection and the per-target lock without dropping
// any tables, leaving the seeded data in place. Idempotent.
func (h *Handle) Close() error {
	if h == nil || !h.beginClose() {
		return nil
	}
	err := h.db.Close()
	h.unlock()
	if err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (h *Handle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// beginClose flips the closed flag exactly once; the caller that wins owns
// the actual release work.
func (h *Handle) beginClose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.closed = true
	return true
}
