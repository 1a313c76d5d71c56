package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// NewFactorsCmd creates the "factors" command group.
func NewFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Inspect the emission-factor dataset",
	}

	cmd.AddCommand(newFactorsListCmd())

	return cmd
}

// newFactorsListCmd creates "factors list".
func newFactorsListCmd() *cobra.Command {
	var (
		mode   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the emission factors the engine can resolve",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromCmd(cmd)

			_, static, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			all := static.All()
			if mode != "" {
				m, parseErr := engine.ParseTransportMode(mode)
				if parseErr != nil {
					return parseErr
				}
				filtered := all[:0]
				for _, f := range all {
					if f.Mode == m {
						filtered = append(filtered, f)
					}
				}
				all = filtered
			}

			switch output {
			case outputJSON:
				return printJSON(cmd, all)
			case outputTable:
				cmd.Println(renderFactors(static.Name(), all))
				return nil
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Filter by transport mode")
	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table or json")

	return cmd
}
