package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/event"
	"github.com/aeronote/aeronote/internal/prov"
)

// RecordEventResult is the record-event command's output payload.
type RecordEventResult struct {
	Artifact   string `json:"artifact"`
	Provenance string `json:"provenance"`
}

// NewRecordEventCommand creates the record-event command.
func NewRecordEventCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-event <date> <begin> <end>",
		Short: "Record a labelled event window",
		Long: `Record an event observed in one day's data: the day (YYYY-MM-DD) and
the event's beginning and end clock times (HH:MM). The event description
is written under event-description/ and the step's provenance is
captured as a visualization activity deriving the description from the
day's observation data.

The day's observation data must already be fetched.

Examples:
  aeronote record-event 2013-04-04 10:00 11:00`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecordEvent(rootOpts, cmd, args[0], args[1], args[2])
		},
	}
	return cmd
}

func runRecordEvent(opts *RootOptions, cmd *cobra.Command, date, begin, end string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeConfig, "invalid config", err)
	}

	if _, err := os.Stat(cfg.ObservationPath(date)); err != nil {
		return WrapCoded(ExitCommandError, ErrCodeArtifact,
			fmt.Sprintf("no observation data for %s; run: aeronote fetch %s", date, date), err)
	}

	start := time.Now()
	desc := &event.Description{Day: date, Beginning: begin, End: end}
	if err := desc.Write(cfg.DescriptionPath(date)); err != nil {
		return WrapCoded(ExitFailure, ErrCodeEvent, "failed to record event", err)
	}

	key, err := newStepRecorder(cfg).record(prov.Visualization,
		[]string{cfg.ObservationName(date)}, cfg.DescriptionName(date), start)
	if err != nil {
		return err
	}

	result := RecordEventResult{Artifact: cfg.DescriptionName(date), Provenance: key}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded event %s %s-%s -> %s (provenance %s)\n",
		date, begin, end, result.Artifact, result.Provenance)
	return nil
}
