package types

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// StoreDriver selects the relational backend.
type StoreDriver string

const (
	DriverSQLite   StoreDriver = "sqlite3"
	DriverPostgres StoreDriver = "postgres"
)

// StoreConfig holds settings for the persistence store.
type StoreConfig struct {
	// Driver selects sqlite3 (default) or postgres.
	Driver StoreDriver `json:"driver" yaml:"driver" mapstructure:"driver"`

	// DSN overrides the connection string built from the fields below.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`

	// DataDir is the directory holding the SQLite database (index/contracts.db).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// Postgres connection parameters, matching the keys of the legacy
	// config.json (host, port, user, password, dbname).
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     string `json:"port" yaml:"port" mapstructure:"port"`
	User     string `json:"user" yaml:"user" mapstructure:"user"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	DBName   string `json:"dbname" yaml:"dbname" mapstructure:"dbname"`
	SSLMode  string `json:"sslmode" yaml:"sslmode" mapstructure:"sslmode"`
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c StoreConfig) WithDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == "" {
		c.Port = "5432"
	}
	if c.User == "" {
		c.User = "postgres"
	}
	if c.DBName == "" {
		c.DBName = "contracts"
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return c
}

// ConnString returns the driver-specific data source name. SQLite paths
// always enable foreign keys so cascades fire.
func (c StoreConfig) ConnString() string {
	c = c.WithDefaults()
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			Host:     c.Host + ":" + c.Port,
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
		}
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
		return u.String()
	default:
		return fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000",
			filepath.Join(c.DataDir, "index", "contracts.db"))
	}
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Mode is "development" (default) or "production".
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// PipelineConfig groups all settings for the ingestion pipeline.
type PipelineConfig struct {
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`
	Log   LogConfig   `json:"log" yaml:"log" mapstructure:"log"`

	// RawDir is the folder of .txt contracts processed by a batch run.
	RawDir string `json:"raw_dir" yaml:"raw_dir" mapstructure:"raw_dir"`
}
