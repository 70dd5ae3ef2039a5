package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/event"
	"github.com/aeronote/aeronote/internal/prov"
)

// ComputeAverageResult is the compute-average command's output payload.
type ComputeAverageResult struct {
	Artifact   string  `json:"artifact"`
	Hours      float64 `json:"hours"`
	Provenance string  `json:"provenance"`
}

// NewComputeAverageCommand creates the compute-average command.
func NewComputeAverageCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute-average",
		Short: "Compute the average event duration",
		Long: `Compute the mean event duration over the event dataset and write it
as a Turtle file using the W3C Time ontology (hours). The step's
provenance is captured as an averaging transformation deriving the
average from the dataset.

The event dataset must already be built.

Examples:
  aeronote compute-average`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComputeAverage(rootOpts, cmd)
		},
	}
	return cmd
}

func runComputeAverage(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	start := time.Now()
	if _, err := os.Stat(cfg.DatasetPath()); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeArtifact,
			"no event dataset found; run: aeronote build-dataset", err)
	}
	rows, err := event.ReadDataset(cfg.DatasetPath())
	if err != nil {
		return WrapCoded(ExitFailure, ErrCodeDataset, "failed to read dataset", err)
	}
	hours, err := event.AverageHours(rows)
	if errors.Is(err, event.ErrEmptyDataset) {
		return WrapCoded(ExitFailure, ErrCodeDataset, "event dataset is empty", err)
	}
	if err != nil {
		return WrapCoded(ExitFailure, ErrCodeDataset, "failed to compute average", err)
	}
	if err := event.WriteAverage(cfg.AveragePath(), hours); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeDataset, "failed to write average", err)
	}

	key, err := newStepRecorder(cfg).record(prov.AveragingTransformation,
		[]string{cfg.DatasetName()}, cfg.AverageName(), start)
	if err != nil {
		return err
	}

	result := ComputeAverageResult{Artifact: cfg.AverageName(), Hours: hours, Provenance: key}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Average event duration: %g hours -> %s (provenance %s)\n",
		result.Hours, result.Artifact, result.Provenance)
	return nil
}
