package engine

import "fmt"

// airStrategy computes emissions for air freight legs. Air is the only
// mode that applies the radiative forcing index, and only inside the
// formula: the factor echoed in results keeps its raw CO2Factor.
type airStrategy struct{}

func newAirStrategy() Strategy { return airStrategy{} }

// Air direct/indirect split for jet fuel combustion.
const (
	airDirectShare   = 0.75
	airIndirectShare = 0.25
)

func (airStrategy) Mode() TransportMode { return ModeAir }

func (airStrategy) Validate(activity ActivityData) []CalculationError {
	return requirePositiveWeight(activity, validateCommon(activity))
}

func (airStrategy) DefaultFactor() EmissionFactor {
	return EmissionFactor{
		ID:          "default-air-jet-cargo",
		Mode:        ModeAir,
		VehicleType: "cargo_plane",
		Fuel:        FuelJet,
		CO2Factor:   DefaultAirCO2Factor,
		Unit:        UnitTonneKm,
		Scope:       ScopeWTW,
		Source:      "GLEC Framework v" + GLECVersion + " default table",
		Version:     GLECVersion + ".0",
	}
}

func (airStrategy) Normalize(activity ActivityData) (ActivityData, []string) {
	var assumptions []string
	if activity.LoadFactor == nil {
		lf := DefaultAirLoadFactor
		activity.LoadFactor = &lf
		assumptions = append(assumptions, defaultLoadFactorAssumption(ModeAir, lf))
	}
	return activity, assumptions
}

func (airStrategy) Compute(activity ActivityData, factor EmissionFactor) Computation {
	comp := tonneKmComputation(activity, factor,
		airDirectShare, airIndirectShare, RadiativeForcingIndex,
		"air tonne-km factor with radiative forcing index, load-factor adjusted")
	comp.Assumptions = append(comp.Assumptions,
		fmt.Sprintf("radiative forcing index %.1f applied to account for high-altitude effects", RadiativeForcingIndex))
	return comp
}
