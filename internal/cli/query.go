package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/provstore"
	"github.com/aeronote/aeronote/internal/querysql"
)

// QueryResult is the query command's output payload.
type QueryResult struct {
	Vars []string   `json:"vars"`
	Rows [][]string `json:"rows"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <file.rq>",
		Short: "Query the recorded provenance",
		Long: `Merge every persisted provenance unit into one store and run the
query file against it. Results are tabular; columns follow the query's
projection order.

Persisted units that fail to parse are skipped and reported on stderr.

Examples:
  aeronote query derivations.rq
  aeronote query average.rq --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runQuery(opts *RootOptions, cmd *cobra.Command, queryFile string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	queryText, err := os.ReadFile(queryFile)
	if err != nil {
		return WrapCoded(ExitCommandError, ErrCodeQuery, "failed to read query file", err)
	}

	store := provstore.New(cfg.ProvenanceDir())
	g, issues, err := store.LoadAll()
	if err != nil {
		return WrapCoded(ExitCommandError, ErrCodeProvenance, "failed to load provenance store", err)
	}
	for _, issue := range issues {
		slog.Warn("skipped provenance unit", "file", issue.File, "err", issue.Err)
	}

	res, err := querysql.Run(context.Background(), g, string(queryText))
	if err != nil {
		return WrapCoded(ExitFailure, ErrCodeQuery, "query failed", err)
	}

	result := QueryResult{Vars: res.Vars, Rows: res.Rows}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	return writeTable(cmd.OutOrStdout(), result)
}

// writeTable prints the result rows with aligned columns.
func writeTable(w io.Writer, result QueryResult) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	header := ""
	for i, v := range result.Vars {
		if i > 0 {
			header += "\t"
		}
		header += "?" + v
	}
	fmt.Fprintln(tw, header)
	for _, row := range result.Rows {
		line := ""
		for i, cell := range row {
			if i > 0 {
				line += "\t"
			}
			line += cell
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
	return nil
}
