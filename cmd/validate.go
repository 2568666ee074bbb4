package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/internal/config"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate dataset files",
	Long: `Check dataset files for structural problems (bad identifiers, duplicate
names, rows referencing undeclared columns) and warn about foreign key
declaration order that would fail at seed time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		files, err := datasetFiles(cfg, validateFile)
		if err != nil {
			return err
		}

		failed := false
		for _, file := range files {
			ds, err := dataset.LoadFile(file)
			if err != nil {
				color.Red("✗ %s: %v", file, err)
				failed = true
				continue
			}

			color.Green("✓ %s (dataset %s, %d tables)", file, ds.Name, len(ds.Tables))

			warnings := ds.OrderWarnings()
			for _, w := range warnings {
				color.Yellow("  ⚠ %s", w)
			}
			if len(warnings) > 0 {
				if order, err := ds.InsertionOrder(); err != nil {
					color.Yellow("  ⚠ %v", err)
				} else {
					fmt.Printf("  suggested declaration order: %s\n", strings.Join(order, ", "))
				}
			}
		}

		if failed {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Validate a specific dataset file")
}
