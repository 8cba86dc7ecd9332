// Package config loads docexport settings from a YAML file, DOCEXPORT_*
// environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-data-exporter/docexport/codec"
)

// Source kinds.
const (
	SourceJSONLines = "jsonl"
	SourceSQL       = "sql"
	SourceRedis     = "redis"
)

// Config represents the docexport configuration
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig selects where documents are read from.
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
	// Path of a JSON-lines file; empty or "-" reads stdin.
	Path string `mapstructure:"path"`
	// Driver and DSN open a database/sql connection; Query selects the documents.
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Query  string `mapstructure:"query"`
	// Addr and Key locate a Redis list of documents.
	Addr     string `mapstructure:"addr"`
	Key      string `mapstructure:"key"`
	PageSize int    `mapstructure:"page_size"`
	// Database is reported as the schema name of every column.
	Database string `mapstructure:"database"`
}

// ExportConfig controls the output.
type ExportConfig struct {
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	Limit     int    `mapstructure:"limit"`
	NullValue string `mapstructure:"null_value"`
	Delimiter string `mapstructure:"delimiter"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"source":      "source.kind",
	"path":        "source.path",
	"driver":      "source.driver",
	"dsn":         "source.dsn",
	"query":       "source.query",
	"addr":        "source.addr",
	"key":         "source.key",
	"page-size":   "source.page_size",
	"database":    "source.database",
	"format":      "export.format",
	"output":      "export.output",
	"limit":       "export.limit",
	"null":        "export.null_value",
	"delimiter":   "export.delimiter",
	"log-level":   "log.level",
	"development": "log.development",
}

// Load reads the configuration. With an empty path, docexport.yaml in the
// working directory is read if present. Flags in fs that were set on the
// command line take precedence over the file and the environment; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("source.kind", SourceJSONLines)
	v.SetDefault("source.path", "")
	v.SetDefault("source.driver", "pgx")
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.query", "")
	v.SetDefault("source.addr", "localhost:6379")
	v.SetDefault("source.key", "")
	v.SetDefault("source.page_size", 100)
	v.SetDefault("source.database", "")
	v.SetDefault("export.format", "csv")
	v.SetDefault("export.output", "")
	v.SetDefault("export.limit", -1)
	v.SetDefault("export.null_value", "")
	v.SetDefault("export.delimiter", ",")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("docexport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DOCEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DelimiterRune returns the CSV delimiter.
func (c ExportConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	src := cfg.Source
	switch src.Kind {
	case SourceJSONLines:
	case SourceSQL:
		if src.Driver == "" || src.DSN == "" || src.Query == "" {
			return errors.New("source.driver, source.dsn and source.query are required for sql sources")
		}
	case SourceRedis:
		if src.Key == "" {
			return errors.New("source.key is required for redis sources")
		}
	default:
		return fmt.Errorf("source.kind must be one of jsonl, sql, redis, got: %q", src.Kind)
	}
	if src.PageSize < 1 {
		return fmt.Errorf("source.page_size must be positive, got: %d", src.PageSize)
	}

	cfg.Export.Format = strings.ToLower(cfg.Export.Format)
	if !slices.Contains(codec.Formats, cfg.Export.Format) {
		return fmt.Errorf("export.format must be one of %s, got: %q", strings.Join(codec.Formats, ", "), cfg.Export.Format)
	}
	if utf8.RuneCountInString(cfg.Export.Delimiter) != 1 {
		return fmt.Errorf("export.delimiter must be a single character, got: %q", cfg.Export.Delimiter)
	}
	return nil
}
