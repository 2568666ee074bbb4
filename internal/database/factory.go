package database

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/reseed/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/reseed/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/reseed/internal/database/sqlite"
)

// NewAdapter selects the engine adapter for a provider name.
func NewAdapter(provider string) (Adapter, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s (supported: postgresql, postgres, mysql, sqlite, sqlite3)", provider)
	}
}
