package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxledger/config"
	"github.com/rustyeddy/fxledger/ledger"
)

var rootCmd = &cobra.Command{
	Use:   "fxledger",
	Short: "Daily cash ledger for a foreign-currency exchange counter",
	Long: `fxledger tracks per-currency daily cash balances for a foreign-currency
exchange operation.

It provides tools for:
  - Recording customer purchases and receipts
  - Recording and correcting custodian deposits
  - Balance statements over arbitrary date ranges
  - Per-day balance lookups
  - Auditing the ledger against the transaction log

Every recorded transaction re-derives the affected day from the log and
propagates the new closing balance through all later days.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	dbPath     string
	configPath string
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite ledger DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

// loadConfig merges the config file (when given) with flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dbPath != "" {
		cfg.Ledger.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "warn"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

// openService opens the ledger store and wraps it in the service facade.
// The returned cleanup closes the store and flushes the logger.
func openService() (*ledger.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	store, err := ledger.Open(cfg.Ledger.DBPath)
	if err != nil {
		logger.Sync()
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	svc := ledger.NewService(store, logger)
	cleanup := func() {
		store.Close()
		logger.Sync()
	}
	return svc, cleanup, nil
}
