package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/reseed/dataset"
	"github.com/Lumos-Labs-HQ/reseed/fixture"
	"github.com/Lumos-Labs-HQ/reseed/internal/config"
)

var resetFile string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the tables your datasets declare",
	Long: `
Reset the target database by dropping every table the datasets declare.
This is a destructive operation that will:

1. Prompt for confirmation (unless --force is used)
2. Drop each dataset's tables, children before parents

⚠️  WARNING: This will permanently delete the data in those tables!

Use --force to skip the confirmation prompt.`,
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

		files, err := datasetFiles(cfg, resetFile)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !askConfirmation(fmt.Sprintf("Drop all tables declared by %d dataset file(s)?", len(files))) {
			color.Yellow("Reset cancelled")
			return nil
		}

		m := fixture.New(fixtureOptions())
		conn := fixture.ConnConfig{Provider: cfg.Database.Provider, URL: dbURL}

		for _, file := range files {
			ds, err := dataset.LoadFile(file)
			if err != nil {
				return err
			}
			if err := m.ResetDataset(cmd.Context(), ds, conn); err != nil {
				return err
			}
			color.Green("✓ Dropped tables for %s", ds.Name)
		}

		return nil
	},
}

func askConfirmation(message string) bool {
	fmt.Printf("🤔 %s (y/N): ", message)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().StringVar(&resetFile, "file", "", "Reset a specific dataset file")
}
