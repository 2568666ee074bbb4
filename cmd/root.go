package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Lumos-Labs-HQ/reseed/fixture"
)

var (
	cfgFile string
	verbose bool
	Version = "1.3.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔═══════════════════════════════════════════════════════╗",
		"║   ██████╗ ███████╗███████╗███████╗███████╗██████╗     ║",
		"║   ██╔══██╗██╔════╝██╔════╝██╔════╝██╔════╝██╔══██╗    ║",
		"║   ██████╔╝█████╗  ███████╗█████╗  █████╗  ██║  ██║    ║",
		"║   ██╔══██╗██╔══╝  ╚════██║██╔══╝  ██╔══╝  ██║  ██║    ║",
		"║   ██║  ██║███████╗███████║███████╗███████╗██████╔╝    ║",
		"║   ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚══════╝╚═════╝     ║",
		"║                                                       ║",
		"║       🌱 Disposable Database Fixtures 🌱              ║",
		"╚═══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                    ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "reseed",
	Short: "Seed disposable, reproducible database fixtures",
	Long: `
reseed manages the lifecycle of disposable database state: it drops whatever
a dataset declares, recreates the schema, inserts the seed rows in declared
order, and can drop it all again afterward.

Database Support:
- PostgreSQL
- MySQL
- SQLite (embedded databases)`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("reseed CLI version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./reseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every lifecycle step")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("reseed.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// fixtureOptions builds the manager options the commands share: silent by
// default, step-by-step console logging with --verbose.
func fixtureOptions() fixture.Options {
	opts := fixture.DefaultOptions()
	if verbose {
		opts.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}
	return opts
}
