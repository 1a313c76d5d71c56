package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonroute/carbonroute/internal/engine"
)

// calculateParams holds the flag values for the calculate command.
type calculateParams struct {
	Mode         string
	Distance     float64
	Weight       float64
	Vehicle      string
	SubType      string
	Fuel         string
	Capacity     float64
	LoadFactor   float64
	EmptyReturn  bool
	FuelConsumed float64
	Precision    int
	NoIndirect   bool
	Biogenic     bool
	Output       string
}

// NewCalculateCmd creates the "calculate" subcommand for a single
// transport leg.
func NewCalculateCmd() *cobra.Command {
	var params calculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate emissions for a single transport leg",
		Long: `Calculate Well-to-Wheel greenhouse-gas emissions for one transport leg.

Distance is required for every mode; cargo weight is required for rail,
sea, and air. When no emission factor matches the vehicle and fuel, the
GLEC default factor for the mode is applied and recorded as an
assumption in the result.`,
		Example: `  carbonroute calculate --mode road --distance 500 --weight 25 --vehicle truck --fuel diesel
  carbonroute calculate --mode air --distance 2000 --weight 5 --vehicle cargo_plane --fuel jet_fuel --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Mode, "mode", "", "Transport mode: road, rail, sea, or air (required)")
	cmd.Flags().Float64Var(&params.Distance, "distance", 0, "Leg distance in km (required)")
	cmd.Flags().Float64Var(&params.Weight, "weight", 0, "Cargo weight in tonnes")
	cmd.Flags().StringVar(&params.Vehicle, "vehicle", "", "Vehicle type, e.g. truck, freight_train, container_ship")
	cmd.Flags().StringVar(&params.SubType, "vehicle-subtype", "", "Vehicle sub-type, e.g. heavy_truck")
	cmd.Flags().StringVar(&params.Fuel, "fuel", "", "Fuel type, e.g. diesel, electric, jet_fuel")
	cmd.Flags().Float64Var(&params.Capacity, "capacity", 0, "Vehicle cargo capacity in tonnes")
	cmd.Flags().Float64Var(&params.LoadFactor, "load-factor", 0, "Capacity utilization in [0,1]; mode default applies when omitted")
	cmd.Flags().BoolVar(&params.EmptyReturn, "empty-return", false, "Include an empty return leg (road)")
	cmd.Flags().Float64Var(&params.FuelConsumed, "fuel-consumed", 0, "Fuel consumed over the leg, for efficiency metrics")
	cmd.Flags().IntVar(&params.Precision, "precision", -1, "Rounding precision 0..6 (default from config)")
	cmd.Flags().BoolVar(&params.NoIndirect, "no-indirect", false, "Omit the upstream fuel production/transport detail")
	cmd.Flags().BoolVar(&params.Biogenic, "biogenic", false, "Report the biogenic CO2 share for biofuels")
	cmd.Flags().StringVar(&params.Output, "output", outputTable, "Output format: table or json")

	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("distance")

	return cmd
}

// runCalculate executes a single calculation and renders it.
func runCalculate(cmd *cobra.Command, params calculateParams) error {
	cfg := configFromCmd(cmd)

	eng, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	mode, err := engine.ParseTransportMode(params.Mode)
	if err != nil {
		return err
	}

	activity := engine.ActivityData{
		Mode:     mode,
		Distance: params.Distance,
		Weight:   params.Weight,
		Vehicle: engine.VehicleCategory{
			Type:     params.Vehicle,
			SubType:  params.SubType,
			Capacity: params.Capacity,
			Fuel:     engine.FuelType(params.Fuel),
		},
		EmptyReturn:  params.EmptyReturn,
		FuelConsumed: params.FuelConsumed,
	}
	if cmd.Flags().Changed("load-factor") {
		lf := params.LoadFactor
		activity.LoadFactor = &lf
	}

	opts := &engine.Options{}
	precision := cfg.Calculation.RoundingPrecision
	if params.Precision >= 0 {
		precision = params.Precision
	}
	opts.RoundingPrecision = &precision
	if params.NoIndirect {
		indirect := false
		opts.IncludeIndirectEmissions = &indirect
	}
	opts.IncludeBiogenic = params.Biogenic

	result, err := eng.Calculate(cmd.Context(), engine.Request{Activity: activity, Options: opts})
	if err != nil {
		if verrs, ok := engine.AsValidationErrors(err); ok {
			return renderValidationErrors(cmd, params.Output, verrs)
		}
		return err
	}

	switch params.Output {
	case outputJSON:
		return printJSON(cmd, result)
	case outputTable:
		cmd.Println(renderResult(result))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", params.Output)
	}
}

// printJSON writes any value as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderValidationErrors reports collected validation defects and
// returns a terminal error so the process exits non-zero.
func renderValidationErrors(cmd *cobra.Command, output string, verrs engine.ValidationErrors) error {
	if output == outputJSON {
		if err := printJSON(cmd, map[string]any{"errors": verrs}); err != nil {
			return err
		}
	} else {
		cmd.Println(renderErrors(verrs))
	}
	return fmt.Errorf("input validation failed with %d error(s)", len(verrs))
}
