package engine

// railStrategy computes emissions for rail freight legs. Electric
// traction is the default assumption, so almost all emissions sit
// upstream in power generation.
type railStrategy struct{}

func newRailStrategy() Strategy { return railStrategy{} }

// Rail direct/indirect split under the electric traction assumption.
const (
	railDirectShare   = 0.10
	railIndirectShare = 0.90
)

func (railStrategy) Mode() TransportMode { return ModeRail }

func (railStrategy) Validate(activity ActivityData) []CalculationError {
	return requirePositiveWeight(activity, validateCommon(activity))
}

func (railStrategy) DefaultFactor() EmissionFactor {
	return EmissionFactor{
		ID:          "default-rail-electric-freight",
		Mode:        ModeRail,
		VehicleType: "freight_train",
		Fuel:        FuelElectric,
		CO2Factor:   DefaultRailCO2Factor,
		Unit:        UnitTonneKm,
		Scope:       ScopeWTW,
		Source:      "GLEC Framework v" + GLECVersion + " default table",
		Version:     GLECVersion + ".0",
	}
}

func (railStrategy) Normalize(activity ActivityData) (ActivityData, []string) {
	var assumptions []string
	if activity.LoadFactor == nil {
		lf := DefaultRailLoadFactor
		activity.LoadFactor = &lf
		assumptions = append(assumptions, defaultLoadFactorAssumption(ModeRail, lf))
	}
	return activity, assumptions
}

func (railStrategy) Compute(activity ActivityData, factor EmissionFactor) Computation {
	return tonneKmComputation(activity, factor,
		railDirectShare, railIndirectShare, 1.0,
		"rail tonne-km factor, load-factor adjusted")
}
