package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/fixture"
	"github.com/Lumos-Labs-HQ/reseed/internal/config"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed datasets into the target database",
	Long: `Drop, recreate and populate the tables each dataset declares, then leave
the seeded data in place for inspection or test runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		dbURL, err := cfg.GetDatabaseURL()
		if err != nil {
			return err
		}

		files, err := datasetFiles(cfg, seedFile)
		if err != nil {
			return err
		}

		m := fixture.New(fixtureOptions())
		conn := fixture.ConnConfig{Provider: cfg.Database.Provider, URL: dbURL}

		for _, file := range files {
			ds, err := dataset.LoadFile(file)
			if err != nil {
				return err
			}

			fmt.Printf("🌱 Seeding dataset: %s\n", ds.Name)
			h, err := m.Seed(cmd.Context(), ds, conn)
			if err != nil {
				return err
			}
			if err := h.Close(); err != nil {
				return err
			}
			color.Green("✓ Seeded %s (%d tables)", ds.Name, len(ds.Tables))
		}

		return nil
	},
}

// datasetFiles resolves which dataset files a command should work on: the
// explicit --file if given, otherwise every YAML file in the datasets
// directory (os.ReadDir returns them sorted by name).
func datasetFiles(cfg *config.Config, single string) ([]string, error) {
	if single != "" {
		return []string{single}, nil
	}

	entries, err := os.ReadDir(cfg.DatasetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read datasets directory %s: %w", cfg.DatasetsDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, filepath.Join(cfg.DatasetsDir, name))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", cfg.DatasetsDir)
	}

	return files, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Seed a specific dataset file")
}
