package engine

// seaStrategy computes emissions for sea freight legs.
type seaStrategy struct{}

func newSeaStrategy() Strategy { return seaStrategy{} }

// Sea direct/indirect split for heavy fuel oil propulsion.
const (
	seaDirectShare   = 0.72
	seaIndirectShare = 0.28
)

func (seaStrategy) Mode() TransportMode { return ModeSea }

func (seaStrategy) Validate(activity ActivityData) []CalculationError {
	return requirePositiveWeight(activity, validateCommon(activity))
}

func (seaStrategy) DefaultFactor() EmissionFactor {
	return EmissionFactor{
		ID:          "default-sea-hfo-container",
		Mode:        ModeSea,
		VehicleType: "container_ship",
		Fuel:        FuelHFO,
		CO2Factor:   DefaultSeaCO2Factor,
		Unit:        UnitTonneKm,
		Scope:       ScopeWTW,
		Source:      "GLEC Framework v" + GLECVersion + " default table",
		Version:     GLECVersion + ".0",
	}
}

func (seaStrategy) Normalize(activity ActivityData) (ActivityData, []string) {
	var assumptions []string
	if activity.LoadFactor == nil {
		lf := DefaultSeaLoadFactor
		activity.LoadFactor = &lf
		assumptions = append(assumptions, defaultLoadFactorAssumption(ModeSea, lf))
	}
	return activity, assumptions
}

func (seaStrategy) Compute(activity ActivityData, factor EmissionFactor) Computation {
	return tonneKmComputation(activity, factor,
		seaDirectShare, seaIndirectShare, 1.0,
		"sea tonne-km factor, load-factor adjusted")
}
