package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	exporter "github.com/go-data-exporter/docexport"
	"github.com/go-data-exporter/docexport/codec"
	"github.com/go-data-exporter/docexport/scanner"
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents as a typed table",
		Long: `Writes every document of the source as one row. The columns are the
fields of the first document; fields missing from later documents are NULL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := codec.ByName(cfg.Export.Format, codec.Settings{
				Limit:     cfg.Export.Limit,
				NullValue: cfg.Export.NullValue,
				Delimiter: cfg.Export.DelimiterRune(),
			})
			if err != nil {
				return err
			}

			src, err := openSource(cmd.Context(), cfg.Source, cmd.InOrStdin(), logger)
			if err != nil {
				return err
			}
			defer src.Close()

			e := exporter.New(scanner.FromDocuments(src), c, exporter.WithLogger(logger))
			if out := cfg.Export.Output; out != "" && out != "-" {
				logger.Info("exporting documents", zap.String("format", cfg.Export.Format), zap.String("output", out))
				return e.WriteFile(out)
			}
			return e.Write(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "csv", "output format: csv, json, jsonl, html, xml")
	flags.StringP("output", "o", "", "output file, - for stdout")
	flags.Int("limit", -1, "maximum number of rows, -1 for all")
	flags.String("null", "", "text written for NULL values")
	flags.String("delimiter", ",", "CSV field delimiter")

	return cmd
}
