// Package config loads schemakit's CLI configuration: database/trino
// connection settings for the sync engine, catalog settings for the
// staging engine, and logging. Loaded with viper (file + env overrides)
// and checked with go-playground/validator struct tags, the same two
// libraries the teacher wires together for its own config.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DatabaseConfig configures the Postgres pool used by the sync engine's
// default backend (internal/sync.Syncer).
type DatabaseConfig struct {
	Host         string `mapstructure:"host" validate:"required"`
	Port         int    `mapstructure:"port" validate:"min=1,max=65535"`
	User         string `mapstructure:"user" validate:"required"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name" validate:"required"`
	SSLMode      string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxConns     int    `mapstructure:"max_conns" validate:"min=1"`
	IdleConns    int    `mapstructure:"idle_conns" validate:"min=0"`
	ConnLifetime int    `mapstructure:"conn_lifetime" validate:"min=1"`
}

// TrinoConfig configures the trino-go-client connection used by the
// sync engine's analytic-warehouse backend (internal/sync.TrinoSyncer).
type TrinoConfig struct {
	Host    string `mapstructure:"host" validate:"required_with=Catalog"`
	Port    int    `mapstructure:"port" validate:"min=0,max=65535"`
	User    string `mapstructure:"user"`
	Catalog string `mapstructure:"catalog"`
	Schema  string `mapstructure:"schema"`
	SSLMode bool   `mapstructure:"ssl"`
	Source  string `mapstructure:"source"`
}

// SyncConfig selects and configures the sync engine's target backend.
type SyncConfig struct {
	Target   string `mapstructure:"target" validate:"oneof=postgres trino"`
	Database DatabaseConfig `mapstructure:"database"`
	Trino    TrinoConfig    `mapstructure:"trino"`
}

// CatalogConfig configures the Iceberg catalog façade the staging
// engine discovers namespaces and tables through (spec.md §4.5).
type CatalogConfig struct {
	Type string `mapstructure:"type" validate:"oneof=rest s3tables unity glue"`

	RESTURI      string `mapstructure:"rest_uri"`
	RESTAuthType string `mapstructure:"rest_auth_type"`
	RESTToken    string `mapstructure:"rest_token"`

	Region             string `mapstructure:"region"`
	Database           string `mapstructure:"database"`
	CredentialsProfile string `mapstructure:"credentials_profile"`
	AssumeRoleARN      string `mapstructure:"assume_role_arn"`

	TableBucketARN string `mapstructure:"table_bucket_arn"`

	UnityWorkspaceURL string `mapstructure:"unity_workspace_url"`
	UnityToken        string `mapstructure:"unity_token"`
	UnityCatalog      string `mapstructure:"unity_catalog"`

	WarehouseLocation string `mapstructure:"warehouse_location"`
}

// StagingConfig configures the Iceberg staging engine.
type StagingConfig struct {
	Catalog       CatalogConfig `mapstructure:"catalog"`
	Namespace     string        `mapstructure:"namespace" validate:"required"`
	FlushRecords  int           `mapstructure:"flush_records" validate:"min=1"`
	DedupStrategy string        `mapstructure:"dedup_strategy" validate:"oneof=none by-path by-content-hash"`
}

// LoggingConfig configures zerolog's global level and writer.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// Config holds all configuration for the schemakit CLI.
type Config struct {
	Sync    SyncConfig    `mapstructure:"sync"`
	Staging StagingConfig `mapstructure:"staging"`
	Logging LoggingConfig `mapstructure:"logging"`
}

var (
	config *Config
	once   sync.Once
)

// Load reads configPath (or ./config.yaml if empty), overlays
// SCHEMAKIT_-prefixed environment variables, and validates the result.
// Subsequent calls in the same process return the first-loaded config,
// mirroring the teacher's once.Do singleton.
func Load(configPath string) (*Config, error) {
	var err error
	once.Do(func() {
		err = loadConfig(configPath)
	})
	return config, err
}

// Get returns the current config, panics if config is not loaded.
func Get() *Config {
	if config == nil {
		panic("config is not loaded")
	}
	return config
}

func loadConfig(configPath string) error {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Printf("No config file found, using defaults and environment variables\n")
	}

	v.SetEnvPrefix("SCHEMAKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("sync.database.host")
	v.BindEnv("sync.database.port")
	v.BindEnv("sync.database.user")
	v.BindEnv("sync.database.password")
	v.BindEnv("sync.database.name")
	v.BindEnv("sync.trino.host")
	v.BindEnv("sync.trino.port")
	v.BindEnv("sync.trino.catalog")
	v.BindEnv("staging.catalog.rest_uri")
	v.BindEnv("staging.catalog.rest_token")
	v.BindEnv("staging.catalog.region")

	setDefaults(v)

	config = &Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return validateConfig(config)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sync.target", "postgres")
	v.SetDefault("sync.database.host", "localhost")
	v.SetDefault("sync.database.port", 5432)
	v.SetDefault("sync.database.user", "postgres")
	v.SetDefault("sync.database.password", "postgres")
	v.SetDefault("sync.database.name", "schemakit")
	v.SetDefault("sync.database.sslmode", "disable")
	v.SetDefault("sync.database.max_conns", 25)
	v.SetDefault("sync.database.idle_conns", 5)
	v.SetDefault("sync.database.conn_lifetime", 5)

	v.SetDefault("sync.trino.port", 8080)
	v.SetDefault("sync.trino.user", "schemakit")
	v.SetDefault("sync.trino.schema", "public")
	v.SetDefault("sync.trino.source", "schemakit")

	v.SetDefault("staging.catalog.type", "rest")
	v.SetDefault("staging.catalog.rest_auth_type", "none")
	v.SetDefault("staging.namespace", "staging")
	v.SetDefault("staging.flush_records", 10000)
	v.SetDefault("staging.dedup_strategy", "by-content-hash")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// BuildDSN builds a PostgreSQL connection string from the sync database
// config, in the libpq URI form pgxpool.ParseConfig expects.
func (c *DatabaseConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
