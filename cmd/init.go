package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/reseed/internal/config"
	"github.com/Lumos-Labs-HQ/reseed/template"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new reseed project",
	Long:  `Initialize a new reseed project with a config file, a datasets directory and an example dataset.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(dbType template.DatabaseType) error {
	if config.IsInitialized() {
		return fmt.Errorf("project is already initialized (%s exists)", config.ConfigFileName)
	}

	tmpl := template.NewProjectTemplate(dbType)

	if err := os.MkdirAll("datasets", 0755); err != nil {
		return fmt.Errorf("failed to create directory datasets: %w", err)
	}

	files := map[string]string{
		config.ConfigFileName: tmpl.GetConfig(),
	}
	if _, err := os.Stat("datasets/classroom.yaml"); os.IsNotExist(err) {
		files["datasets/classroom.yaml"] = tmpl.GetExampleDataset()
	}

	for filePath, content := range files {
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	// The .env file is handled separately to preserve existing variables.
	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Printf("✅ Successfully initialized reseed project with %s database support\n", dbType)
	fmt.Println()
	fmt.Println("📁 Project structure created:")
	fmt.Println("   datasets/")
	fmt.Println()
	fmt.Println("📝 Configuration file created:")
	fmt.Printf("   %s\n", config.ConfigFileName)

	if os.Getenv("DATABASE_URL") != "" {
		fmt.Println()
		fmt.Println("ℹ️  Using existing DATABASE_URL from environment")
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   reseed validate   # Check the example dataset\n")
	fmt.Printf("   reseed seed       # Seed it into DATABASE_URL\n")
	fmt.Printf("   reseed reset      # Drop the seeded tables again\n")

	return nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	// Append DATABASE_URL to the existing .env
	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by reseed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
