package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-data-exporter/docexport/metadata"
)

// NewDescribeCommand creates the describe command
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the column metadata of the first document",
		Long: `Reads the first document of the source and prints one line per field:
its position, name, resolved SQL type, type name, whether it is signed and
the Go type of its value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			src, err := openSource(cmd.Context(), cfg.Source, cmd.InOrStdin(), logger)
			if err != nil {
				return err
			}
			defer src.Close()

			if !src.Next() {
				if err := src.Err(); err != nil {
					return err
				}
				return errors.New("no documents found")
			}
			return describe(cmd.OutOrStdout(), metadata.New(src))
		},
	}
}

func describe(w io.Writer, md *metadata.ResultSetMetaData) error {
	title := color.New(color.FgCyan, color.Bold)
	table := md.TableName(1)
	if table == "" {
		table = "(no class)"
	}
	if schema := md.SchemaName(1); schema != "" {
		table = schema + "." + table
	}
	title.Fprintf(w, "%s: %d columns\n", table, md.ColumnCount())

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSQL TYPE\tTYPE NAME\tSIGNED\tCLASS")
	for i := 1; i <= md.ColumnCount(); i++ {
		sqlType, err := md.ColumnType(i)
		if err != nil {
			return err
		}
		class := md.ColumnClassName(i)
		if class == "" {
			class = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i, md.ColumnName(i), sqlType, md.ColumnTypeName(i), strconv.FormatBool(md.IsSigned(i)), class)
	}
	return tw.Flush()
}
