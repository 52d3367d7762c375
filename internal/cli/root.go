// Package cli wires the daemon's commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Manifold-MEV/friendtech-presale/internal/config"
)

var (
	configFile string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "friendtechd",
	Short: "friendtechd - presale share ledger daemon",
	Long: `friendtechd runs an internal share accounting ledger in front of a
fractional-share market venue. It custodies venue shares through a
proxy account, tracks internal balances, allowances and transfers,
and settles whitelisted presale contributions atomically.`,
	Version: "0.1.0",
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// loadConfig loads the file named by --conf, or defaults when the flag
// is unset, and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.Log.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
