// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the contract-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/contract-engine/internal/logger"
	"github.com/pdiddy/contract-engine/internal/secrets"
	"github.com/pdiddy/contract-engine/internal/store"
	"github.com/pdiddy/contract-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appLog is built from the loaded configuration before any command runs.
var appLog = logger.Nop()

// rootCmd is the base command for the contract-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "contract-engine",
	Short: "Extract structured data from employment contracts",
	Long: `contract-engine splits employment contracts (Dutch or English) into
numbered clauses, classifies each clause, extracts typed data points with
rule-based patterns, and stores everything in SQLite or PostgreSQL for
querying and comparison across contracts.

Use ingest to process documents, extract for a dry run, and clauses,
summary, values, compare, contracts, and export to read the store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		appLog = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		appLog.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./contract-engine.yaml or ~/.config/contract-engine/config.yaml)")
	flags.String("driver", "sqlite3", "store driver: sqlite3 or postgres")
	flags.String("dsn", "", "database connection string (overrides the individual settings)")
	flags.String("data-dir", "data", "base directory for the SQLite database (contains index/)")
	flags.String("log-mode", "development", "log mode: development or production")
	flags.String("secrets-dir", ".secrets", "directory of credential files (db-password, db-dsn, db-user)")

	viper.BindPFlag("store.driver", flags.Lookup("driver"))
	viper.BindPFlag("store.dsn", flags.Lookup("dsn"))
	viper.BindPFlag("store.data_dir", flags.Lookup("data-dir"))
	viper.BindPFlag("log.mode", flags.Lookup("log-mode"))
	viper.BindPFlag("secrets_dir", flags.Lookup("secrets-dir"))
}

func initConfig() {
	// A missing .env is fine; settings may come from the environment or
	// the config file instead.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("contract-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "contract-engine"))
		}
	}

	viper.SetDefault("store.host", "localhost")
	viper.SetDefault("store.port", "5432")
	viper.SetDefault("store.user", "")
	viper.SetDefault("store.password", "")
	viper.SetDefault("store.dbname", "contracts")
	viper.SetDefault("store.sslmode", "disable")
	viper.SetDefault("raw_dir", filepath.Join("data", "raw"))

	// CONTRACT_ENGINE_STORE_DRIVER, CONTRACT_ENGINE_STORE_PASSWORD, ...
	viper.SetEnvPrefix("CONTRACT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, environment, and file settings, then
// fills unset database credentials from the secrets directory.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	creds, err := secrets.Load(viper.GetString("secrets_dir"), appLog)
	if err != nil {
		return cfg, err
	}
	cfg.Store = secrets.ApplyStore(cfg.Store, creds).WithDefaults()
	if cfg.RawDir == "" {
		cfg.RawDir = filepath.Join("data", "raw")
	}
	return cfg, nil
}

// openStore opens the configured store. The caller must Close it.
func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store, appLog)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
