package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/obs"
)

// FetchResult is the fetch command's output payload.
type FetchResult struct {
	Date     string `json:"date"`
	Artifact string `json:"artifact"`
	Rows     int    `json:"rows"`
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <date>",
		Short: "Fetch one day of observation data",
		Long: `Fetch the observation data for one day (YYYY-MM-DD) from the data
service and save it under observational-data/ in the workspace.

Fetch failures are never retried; rerun the command manually.

Examples:
  aeronote fetch 2013-04-04
  aeronote fetch 2013-04-04 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runFetch(opts *RootOptions, cmd *cobra.Command, date string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	day, err := obs.NewClient(cfg.DataURL).FetchDay(context.Background(), date)
	if err != nil {
		return WrapCoded(ExitCommandError, ErrCodeFetch, "failed to fetch observations", err)
	}
	if err := day.WriteCSV(cfg.ObservationPath(date)); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeFetch, "failed to save observations", err)
	}

	result := FetchResult{Date: date, Artifact: cfg.ObservationName(date), Rows: len(day.Records)}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Fetched %d observation rows for %s -> %s\n", result.Rows, date, result.Artifact)
	return nil
}
