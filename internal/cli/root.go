// Package cli implements the aeronote command surface: the notebook
// workflow steps plus the provenance query command.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeronote/aeronote/internal/config"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Agent      string // overrides the config file agent
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the aeronote CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "aeronote",
		Short: "aeronote - a provenance-keeping observation notebook",
		Long: `A notebook for a small observational workflow: fetch aerosol
observation data, record labelled event windows, aggregate event
durations, and capture PROV-O provenance for every step. The recorded
provenance is queryable with a SPARQL-style pattern language.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultFile, "path to config file")
	cmd.PersistentFlags().StringVar(&opts.Agent, "agent", "", "agent identity (overrides config)")

	cmd.AddCommand(NewFetchCommand(opts))
	cmd.AddCommand(NewRecordEventCommand(opts))
	cmd.AddCommand(NewBuildDatasetCommand(opts))
	cmd.AddCommand(NewComputeAverageCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

// loadConfig resolves the effective configuration for one command run.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Agent != "" {
		cfg.Agent = opts.Agent
	}
	return cfg, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
