package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sahajm/finledger/internal/config"
)

var (
	flagServer string
	flagDB     string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "finledger",
	Short: "Personal double-entry bookkeeping ledger",
	Long:  "A personal finance ledger backed by SQLite. Every transaction is recorded as a balanced pair of debit/credit entries, so account balances and net worth are always consistent.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Server address (default http://localhost:8710)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default finledger.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default finledger.yaml)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig folds command-line flags over file and environment values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
