// Package cli implements the docexport command line tool.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-data-exporter/docexport/internal/config"
	"github.com/go-data-exporter/docexport/internal/logging"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docexport",
		Short: "Describe and export schema-less documents as typed tables",
		Long: color.CyanString(`docexport - document result set tooling

docexport reads documents from JSON-lines files, SQL tables or Redis lists,
resolves a SQL type for every field and writes them as CSV, JSON, HTML or XML.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./docexport.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.Bool("development", false, "human readable logs")
	flags.String("source", config.SourceJSONLines, "document source: jsonl, sql, redis")
	flags.String("path", "", "JSON-lines file to read, - for stdin")
	flags.String("driver", "pgx", "database/sql driver for sql sources: pgx, sqlite")
	flags.String("dsn", "", "data source name for sql sources")
	flags.String("query", "", "query whose first column holds the documents")
	flags.String("addr", "localhost:6379", "Redis address")
	flags.String("key", "", "Redis list holding the documents")
	flags.Int("page-size", 100, "documents fetched per Redis round trip")
	flags.String("database", "", "database name reported as the schema of every column")

	rootCmd.AddCommand(NewDescribeCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "docexport version: ")
			fmt.Fprintln(out, Version)
			titleColor.Fprint(out, "Git commit: ")
			fmt.Fprintln(out, GitCommit)
			titleColor.Fprint(out, "Go version: ")
			fmt.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration for cmd and builds its logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
