// Package fixturetest wires the fixture manager into Go tests: handles are
// seeded against a target and torn down automatically via t.Cleanup.
package fixturetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/fixture"
)

// Seed provisions the Dataset against the target and registers teardown on
// the test's cleanup stack, so the tables are gone when the test finishes.
// Fails the test immediately if seeding fails.
func Seed(t testing.TB, ds *dataset.Dataset, cfg fixture.ConnConfig) *fixture.Handle {
	t.Helper()

	m := fixture.New(fixture.DefaultOptions())
	h, err := m.Seed(context.Background(), ds, cfg)
	if err != nil {
		t.Fatalf("failed to seed fixture: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Teardown(context.Background(), h); err != nil {
			t.Errorf("failed to tear down fixture: %v", err)
		}
	})

	return h
}

// TempSQLite returns a connection config pointing at a throwaway SQLite
// file under the test's temporary directory.
func TempSQLite(t testing.TB) fixture.ConnConfig {
	t.Helper()

	return fixture.ConnConfig{
		Provider: "sqlite",
		URL:      "sqlite://" + filepath.Join(t.TempDir(), "fixture.db"),
	}
}
