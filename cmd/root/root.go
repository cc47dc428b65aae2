// Package root contains the root command for the application
package root

import (
	"hsouza/julius/internal/config"
	"hsouza/julius/internal/database"
	"hsouza/julius/internal/logging"
	"hsouza/julius/internal/normalizer"
	"hsouza/julius/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "julius",
		Short: "Julius is a personal finance assistant for Brazilian credit card statements.",
		Long: `Julius ingests Nubank credit card statements in PDF form, normalizes and
categorizes the transactions, and answers questions about your spending in
Portuguese.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to Julius!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
			store.SetLogger(Log)
		},
	}
)

// GetLogger returns the structured logger adapter shared by commands.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// OpenDatabase opens the configured database, creating the schema when
// missing.
func OpenDatabase() (*database.DB, error) {
	db, err := database.Open(Cfg.Data.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewNormalizer builds a normalizer from the configured rules file.
func NewNormalizer() (*normalizer.Normalizer, error) {
	return normalizer.New(store.NewRuleStore(Cfg.Data.RulesFile), GetLogger())
}
