package engine

import (
	"context"
	"fmt"
)

// FactorProvider is the external factor-lookup capability consumed by the
// engine. Implementations may suspend (remote stores); the engine never
// assumes a lookup succeeds. Both an error and an empty result are
// treated as "not found" and degrade to the mode's default factor.
type FactorProvider interface {
	Lookup(ctx context.Context, mode TransportMode, vehicleType string, fuel FuelType) ([]EmissionFactor, error)
}

// Computation is the mode-specific output of the compute stage: per-gas
// masses in kg before GWP conversion and rounding, the direct/indirect
// CO2 split, and the human-readable method description.
type Computation struct {
	CO2         float64
	CH4         float64
	N2O         float64
	Direct      float64
	Indirect    float64
	Method      string
	Assumptions []string
}

// Strategy is the per-mode capability set driven by the pipeline:
// validation, default-factor substitution, input normalization, and the
// mode-specific emissions formula. Strategies are stateless and safe for
// concurrent use.
type Strategy interface {
	// Mode returns the transport mode this strategy serves.
	Mode() TransportMode

	// Validate inspects the activity and returns every defect found.
	Validate(activity ActivityData) []CalculationError

	// DefaultFactor returns the documented fallback factor for the mode.
	DefaultFactor() EmissionFactor

	// Normalize fills mode defaults (load factor, vehicle aliases) and
	// returns the normalized copy plus assumption strings describing
	// every substitution it made.
	Normalize(activity ActivityData) (ActivityData, []string)

	// Compute runs the mode formula over a validated, normalized
	// activity and a resolved factor.
	Compute(activity ActivityData, factor EmissionFactor) Computation
}

// validateCommon checks the constraints shared by every mode: positive
// distance, a valid fuel type, and an in-range load factor.
func validateCommon(activity ActivityData) []CalculationError {
	var errs []CalculationError

	if activity.Distance <= 0 {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidDistance,
			Message:    fmt.Sprintf("distance must be positive, got %v", activity.Distance),
			Field:      "distance",
			Suggestion: "provide the leg distance in kilometers",
		})
	}

	if activity.Vehicle.Fuel != "" && !activity.Vehicle.Fuel.Valid() {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidFuelType,
			Message:    fmt.Sprintf("unknown fuel type %q", activity.Vehicle.Fuel),
			Field:      "vehicle.fuelType",
			Suggestion: "use one of the supported fuel types, e.g. diesel or electric",
		})
	}

	if lf := activity.LoadFactor; lf != nil && (*lf < 0 || *lf > 1) {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidLoadFactor,
			Message:    fmt.Sprintf("load factor must be within [0,1], got %v", *lf),
			Field:      "loadFactor",
			Suggestion: "express utilization as a fraction of capacity",
		})
	}

	return errs
}

// requirePositiveWeight adds the weight constraint for tonne-distance modes.
func requirePositiveWeight(activity ActivityData, errs []CalculationError) []CalculationError {
	if activity.Weight <= 0 {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidWeight,
			Message:    fmt.Sprintf("cargo weight must be positive, got %v", activity.Weight),
			Field:      "weight",
			Suggestion: "provide the cargo weight in tonnes",
		})
	}
	return errs
}

// defaultLoadFactorAssumption describes a substituted load factor.
func defaultLoadFactorAssumption(mode TransportMode, lf float64) string {
	return fmt.Sprintf("load factor not provided; applied %s default %.2f", mode, lf)
}

// tonneKmComputation is the shared formula for the mass-based modes:
// base = distance x weight x co2Factor, adjusted by the load factor, with
// a fixed direct/indirect split. extraMultiplier is 1 except for air,
// which applies the radiative forcing index.
func tonneKmComputation(activity ActivityData, factor EmissionFactor, direct, indirect, extraMultiplier float64, method string) Computation {
	tonneKm := activity.Distance * activity.Weight
	base := tonneKm * factor.CO2Factor * extraMultiplier

	lf := 1.0
	if activity.LoadFactor != nil && *activity.LoadFactor > 0 {
		lf = *activity.LoadFactor
	}
	adjusted := base / lf

	comp := Computation{
		CO2:      adjusted,
		Direct:   adjusted * direct,
		Indirect: adjusted * indirect,
		Method:   method,
	}

	if factor.CH4Factor > 0 {
		comp.CH4 = tonneKm * factor.CH4Factor
	}
	if factor.N2OFactor > 0 {
		comp.N2O = tonneKm * factor.N2OFactor
	}

	return comp
}
