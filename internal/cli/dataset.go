package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/event"
	"github.com/aeronote/aeronote/internal/prov"
)

// BuildDatasetResult is the build-dataset command's output payload.
type BuildDatasetResult struct {
	Artifact   string `json:"artifact"`
	Events     int    `json:"events"`
	Provenance string `json:"provenance"`
}

// NewBuildDatasetCommand creates the build-dataset command.
func NewBuildDatasetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-dataset",
		Short: "Aggregate event descriptions into the event dataset",
		Long: `Read every recorded event description and write the combined event
dataset CSV (day, beginning, end, duration). The step's provenance is
captured as a transformation deriving the dataset from every event
description.

Examples:
  aeronote build-dataset`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuildDataset(rootOpts, cmd)
		},
	}
	return cmd
}

func runBuildDataset(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	start := time.Now()
	rows, err := event.BuildDataset(cfg.DescriptionDir())
	if err != nil {
		return WrapCoded(ExitFailure, ErrCodeDataset, "failed to build dataset", err)
	}
	inputs, err := descriptionArtifacts(cfg.DescriptionDir())
	if err != nil {
		return WrapCoded(ExitCommandError, ErrCodeDataset, "failed to list event descriptions", err)
	}
	if len(inputs) == 0 {
		return WrapCoded(ExitCommandError, ErrCodeArtifact,
			"no event descriptions recorded; run: aeronote record-event", nil)
	}
	if err := event.WriteDataset(cfg.DatasetPath(), rows); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeDataset, "failed to write dataset", err)
	}

	key, err := newStepRecorder(cfg).record(prov.GenericTransformation, inputs, cfg.DatasetName(), start)
	if err != nil {
		return err
	}

	result := BuildDatasetResult{Artifact: cfg.DatasetName(), Events: len(rows), Provenance: key}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Built %s from %d events (provenance %s)\n",
		result.Artifact, result.Events, result.Provenance)
	return nil
}

// descriptionArtifacts lists the workspace-relative artifact names of all
// recorded event descriptions.
func descriptionArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, path.Join("event-description", entry.Name()))
	}
	return names, nil
}
