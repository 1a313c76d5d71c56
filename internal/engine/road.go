package engine

import (
	"fmt"
	"math"
)

// roadStrategy computes emissions for road freight legs. Road is the only
// mode where weight is optional: distance-based factors apply directly,
// tonne-km factors apply only when the caller supplied a cargo weight.
type roadStrategy struct{}

func newRoadStrategy() Strategy { return roadStrategy{} }

func (roadStrategy) Mode() TransportMode { return ModeRoad }

func (roadStrategy) Validate(activity ActivityData) []CalculationError {
	errs := validateCommon(activity)

	if activity.Vehicle.Type == "" {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidVehicle,
			Message:    "vehicle type is required for road legs",
			Field:      "vehicle.type",
			Suggestion: "set vehicle.type, e.g. truck or van",
		})
	}

	if activity.Vehicle.Fuel == "" {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidFuelType,
			Message:    "vehicle fuel type is required for road legs",
			Field:      "vehicle.fuelType",
			Suggestion: "set vehicle.fuelType, e.g. diesel",
		})
	}

	if activity.Weight < 0 {
		errs = append(errs, CalculationError{
			Code:       CodeInvalidWeight,
			Message:    fmt.Sprintf("cargo weight cannot be negative, got %v", activity.Weight),
			Field:      "weight",
			Suggestion: "omit weight or provide it in tonnes",
		})
	}

	return errs
}

func (roadStrategy) DefaultFactor() EmissionFactor {
	return EmissionFactor{
		ID:          "default-road-diesel-truck",
		Mode:        ModeRoad,
		VehicleType: "truck",
		Fuel:        FuelDiesel,
		CO2Factor:   DefaultRoadCO2Factor,
		Unit:        UnitKm,
		Scope:       ScopeWTW,
		Source:      "GLEC Framework v" + GLECVersion + " default table",
		Version:     GLECVersion + ".0",
	}
}

func (roadStrategy) Normalize(activity ActivityData) (ActivityData, []string) {
	var assumptions []string

	if canonical, aliased := CanonicalRoadVehicleType(activity.Vehicle.Type); aliased {
		assumptions = append(assumptions,
			fmt.Sprintf("vehicle type %q normalized to %q", activity.Vehicle.Type, canonical))
		activity.Vehicle.Type = canonical
	}

	if activity.LoadFactor == nil {
		lf := RoadLoadFactorFor(activity.Vehicle.SubType)
		activity.LoadFactor = &lf
		assumptions = append(assumptions, defaultLoadFactorAssumption(ModeRoad, lf))
	}

	return activity, assumptions
}

func (roadStrategy) Compute(activity ActivityData, factor EmissionFactor) Computation {
	var (
		base        float64
		method      string
		assumptions []string
	)

	switch {
	case factor.Unit == UnitTonneKm && activity.Weight > 0:
		base = activity.Distance * activity.Weight * factor.CO2Factor
		method = "road tonne-km factor, load-factor adjusted"
	case factor.Unit == UnitTonneKm:
		// Tonne-km factor without a weight degrades to distance-based.
		base = activity.Distance * factor.CO2Factor
		method = "road distance factor, load-factor adjusted"
		assumptions = append(assumptions,
			"tonne-km factor applied per km because cargo weight was not provided")
	default:
		base = activity.Distance * factor.CO2Factor
		method = "road distance factor, load-factor adjusted"
	}

	lf := DefaultRoadLoadFactor
	if activity.LoadFactor != nil {
		lf = *activity.LoadFactor
	}
	adjusted := base / math.Max(lf, MinEffectiveLoadFactor)

	if activity.EmptyReturn {
		adjusted *= EmptyReturnMultiplier
		assumptions = append(assumptions,
			fmt.Sprintf("empty return leg included at %.1fx energy cost", EmptyReturnMultiplier))
	}

	direct, indirect := SplitForFuel(activity.Vehicle.Fuel)

	comp := Computation{
		CO2:         adjusted,
		Direct:      adjusted * direct,
		Indirect:    adjusted * indirect,
		Method:      method,
		Assumptions: assumptions,
	}

	if factor.CH4Factor > 0 {
		comp.CH4 = activity.Distance * factor.CH4Factor * lf
	}
	if factor.N2OFactor > 0 {
		comp.N2O = activity.Distance * factor.N2OFactor * lf
	}

	return comp
}
