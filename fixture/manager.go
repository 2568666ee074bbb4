package fixture

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/internal/database"
)

const defaultBatchSize = 100

// ConnConfig identifies the target database. Which target to seed is the
// caller's decision entirely; the manager never infers or overrides it.
type ConnConfig struct {
	// Provider is one of postgresql, postgres, mysql, sqlite, sqlite3.
	Provider string
	// URL is the connection URL or native DSN for the provider.
	URL string
}

func (c ConnConfig) key() string { return c.Provider + "|" + c.URL }

// Scope selects how ScopedRun shares seeded state across bodies.
type Scope int

const (
	// ScopePerRun seeds and tears down around every body. Full isolation.
	ScopePerRun Scope = iota
	// ScopePerGroup seeds once, runs all bodies against the shared handle,
	// and tears down after the last. Bodies see each other's mutations.
	ScopePerGroup
)

type Options struct {
	Scope Scope
	// BatchSize caps rows per INSERT statement. Engines may cap it lower.
	BatchSize int
	Logger    zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Scope:     ScopePerRun,
		BatchSize: defaultBatchSize,
		Logger:    zerolog.Nop(),
	}
}

// Body is one unit of consumer work run against a seeded handle.
type Body func(ctx context.Context, h *Handle) error

// Manager owns the seed/teardown lifecycle. Episodes against the same
// target are serialized by a per-target lock held from Seed through
// Teardown or Close; a second caller waits rather than interleaving.
type Manager struct {
	opts Options

	mu      sync.Mutex
	targets map[string]*targetState
}

type targetState struct {
	mu sync.Mutex
	// lastDataset is whatever Seed most recently applied to this target,
	// so Reset knows which tables to drop.
	lastDataset *dataset.Dataset
}

func New(opts Options) *Manager {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	return &Manager{
		opts:    opts,
		targets: make(map[string]*targetState),
	}
}

func (m *Manager) target(cfg ConnConfig) *targetState {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts, ok := m.targets[cfg.key()]
	if !ok {
		ts = &targetState{}
		m.targets[cfg.key()] = ts
	}
	return ts
}

// Seed drops whatever tables the Dataset declares, recreates them, inserts
// the seed rows in declared order, and hands back an open Handle bound to
// the fresh state. On any failure it cleans up best-effort and returns a
// typed error; it never hands out a partially seeded handle.
func (m *Manager) Seed(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig) (*Handle, error) {
	if ds == nil {
		return nil, &ConfigError{Err: errors.New("dataset is nil")}
	}
	if err := ds.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	adapter, err := database.NewAdapter(cfg.Provider)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	ts := m.target(cfg)
	ts.mu.Lock()

	id := uuid.NewString()
	logger := m.opts.Logger.With().
		Str("episode", id).
		Str("provider", cfg.Provider).
		Str("dataset", ds.Name).
		Logger()

	logger.Debug().Str("step", string(StepConnect)).Msg("opening connection")
	db, err := database.Open(ctx, adapter, cfg.URL)
	if err != nil {
		ts.mu.Unlock()
		return nil, &ConnectError{Target: redactTarget(cfg), Err: err}
	}

	ep := &episode{
		adapter: adapter,
		db:      db,
		batch:   m.opts.BatchSize,
		logger:  logger,
	}
	if err := ep.run(ctx, ds); err != nil {
		db.Close()
		ts.mu.Unlock()
		return nil, err
	}

	ts.lastDataset = ds
	logger.Debug().Msg("seed complete, handing off")

	return &Handle{
		id:      id,
		ds:      ds,
		adapter: adapter,
		db:      db,
		unlock:  ts.mu.Unlock,
	}, nil
}

// Teardown drops every table the handle's Dataset declared (children
// first), closes the handle and releases the per-target lock. Tearing down
// an already-closed handle is a no-op.
func (m *Manager) Teardown(ctx context.Context, h *Handle) error {
	if h == nil || !h.beginClose() {
		return nil
	}
	// Teardown still runs when the surrounding context was cancelled.
	ctx = context.WithoutCancel(ctx)

	logger := m.opts.Logger.With().Str("episode", h.id).Logger()
	logger.Debug().Msg("tearing down")

	var errs []error
	tables := h.ds.Tables
	for i := len(tables) - 1; i >= 0; i-- {
		name := tables[i].Name
		if _, err := h.db.ExecContext(ctx, h.adapter.DropTableSQL(name)); err != nil && !h.adapter.IsUndefinedTable(err) {
			errs = append(errs, &TeardownError{Table: name, Err: h.adapter.Normalize(err)})
		}
	}
	if err := h.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
	}
	h.unlock()

	return errors.Join(errs...)
}

// ScopedRun is the fixture-with-teardown contract: every body runs against
// seeded state and teardown is guaranteed on every exit path, including
// body errors, panics and context cancellation. Under ScopePerRun each
// body gets its own episode and the first body error stops the run; under
// ScopePerGroup all bodies share one episode.
func (m *Manager) ScopedRun(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig, bodies ...Body) error {
	if len(bodies) == 0 {
		return nil
	}
	if m.opts.Scope == ScopePerGroup {
		return m.runGroup(ctx, ds, cfg, bodies)
	}
	for _, body := range bodies {
		if err := m.runScoped(ctx, ds, cfg, body); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) runScoped(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig, body Body) (err error) {
	h, err := m.Seed(ctx, ds, cfg)
	if err != nil {
		return err
	}
	defer func() {
		tdErr := m.Teardown(ctx, h)
		if r := recover(); r != nil {
			if tdErr != nil {
				m.opts.Logger.Error().Err(tdErr).Str("episode", h.id).
					Msg("teardown failed while a panic was unwinding")
			}
			panic(r)
		}
		err = errors.Join(err, tdErr)
	}()
	return body(ctx, h)
}

func (m *Manager) runGroup(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig, bodies []Body) (err error) {
	h, err := m.Seed(ctx, ds, cfg)
	if err != nil {
		return err
	}
	defer func() {
		tdErr := m.Teardown(ctx, h)
		if r := recover(); r != nil {
			if tdErr != nil {
				m.opts.Logger.Error().Err(tdErr).Str("episode", h.id).
					Msg("teardown failed while a panic was unwinding")
			}
			panic(r)
		}
		err = errors.Join(err, tdErr)
	}()
	for _, body := range bodies {
		if err := body(ctx, h); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops the tables of the Dataset most recently seeded against the
// target. With no seed on record it does nothing: there is nothing this
// manager knows to drop. Absent tables are tolerated, so Reset is
// idempotent.
func (m *Manager) Reset(ctx context.Context, cfg ConnConfig) error {
	ts := m.target(cfg)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.lastDataset == nil {
		return nil
	}
	return m.dropTables(ctx, ts.lastDataset, cfg)
}

// ResetDataset drops the given Dataset's tables without needing a prior
// Seed in this process. This is what `reseed reset` uses.
func (m *Manager) ResetDataset(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig) error {
	if ds == nil {
		return nil
	}
	if err := ds.Validate(); err != nil {
		return &ConfigError{Err: err}
	}

	ts := m.target(cfg)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	return m.dropTables(ctx, ds, cfg)
}

func (m *Manager) dropTables(ctx context.Context, ds *dataset.Dataset, cfg ConnConfig) error {
	adapter, err := database.NewAdapter(cfg.Provider)
	if err != nil {
		return &ConfigError{Err: err}
	}
	db, err := database.Open(ctx, adapter, cfg.URL)
	if err != nil {
		return &ConnectError{Target: redactTarget(cfg), Err: err}
	}
	defer db.Close()

	var errs []error
	for i := len(ds.Tables) - 1; i >= 0; i-- {
		name := ds.Tables[i].Name
		if _, err := db.ExecContext(ctx, adapter.DropTableSQL(name)); err != nil && !adapter.IsUndefinedTable(err) {
			errs = append(errs, &TeardownError{Table: name, Err: adapter.Normalize(err)})
		}
	}
	return errors.Join(errs...)
}

// redactTarget renders a connection target for error messages without
// leaking credentials.
func redactTarget(cfg ConnConfig) string {
	if !strings.Contains(cfg.URL, "@") {
		return cfg.URL
	}
	if u, err := url.Parse(cfg.URL); err == nil && u.User != nil {
		return u.Redacted()
	}
	return cfg.Provider + " database"
}
