// Package cli wires the carbonroute commands: single calculations,
// batch runs, and factor dataset listings.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonroute/carbonroute/internal/config"
	"github.com/carbonroute/carbonroute/internal/logging"
)

// Output format flag values.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// configKey carries the loaded configuration through the command context.
type configKey struct{}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root carbonroute command. It wires logging and
// configuration loading into every subcommand via PersistentPreRunE.
func NewRootCmd(version string) *cobra.Command {
	var (
		logLevel   string
		debug      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "carbonroute",
		Short:   "GLEC-conformant freight emissions calculator",
		Long:    "carbonroute computes Well-to-Wheel greenhouse-gas emissions for road, rail, sea, and air transport legs following the GLEC Framework v3.1.",
		Version: version,
		Example: `  # Single road leg
  carbonroute calculate --mode road --distance 500 --weight 25 --vehicle truck --fuel diesel

  # Batch with aggregation
  carbonroute batch --input legs.yaml --aggregate

  # Inspect the factor dataset
  carbonroute factors list --mode sea`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if debug {
				cfg.Logging.Level = zerolog.LevelDebugValue
			}
			// Piped stderr gets machine-readable logs unless a format
			// was chosen explicitly.
			if cfg.Logging.Format == "" {
				cfg.Logging.Format = logging.FormatJSON
				if isTerminal(os.Stderr) {
					cfg.Logging.Format = logging.FormatConsole
				}
			}

			logCfg := logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Output: logging.OutputStderr,
			}
			if cfg.Logging.File != "" {
				logCfg.Output = logging.OutputFile
				logCfg.File = cfg.Logging.File
			}

			logger, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			logging.SetGlobal(logger)

			ctx := logging.WithContext(cmd.Context(), logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Shorthand for --log-level debug")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.carbonroute/config.yaml)")

	cmd.AddCommand(
		NewCalculateCmd(),
		NewBatchCmd(),
		NewFactorsCmd(),
	)

	return cmd
}

// configFromCmd retrieves the configuration stashed by the root command,
// falling back to defaults when a subcommand runs standalone in tests.
func configFromCmd(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
