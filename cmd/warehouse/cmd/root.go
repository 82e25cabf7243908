// Package cmd - warehouse CLI commands
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finmart/warehouse/internal/pkg/config"
	"github.com/finmart/warehouse/internal/pkg/logger"
)

const (
	serviceName    = "finmart-warehouse"
	serviceVersion = "1.0.0"
)

var (
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "FinMart warehouse - staging to star schema transform engine",
	Long: `FinMart warehouse - staging to star schema transform engine

Commands:
    transform    run the staging-to-star-schema transform (once or on a cron schedule)
    summary      print warehouse row counts, market breadth and sentiment
    health       check database connectivity and pool health
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(healthCmd)
}

// initConfig loads .env (or the environment) and wires the global logger.
func initConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	return logger.Init(logger.Config{
		Level:          level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	})
}
