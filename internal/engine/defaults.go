package engine

// Hardcoded fallback factors and default utilization values, applied when
// the external factor provider has no matching record. Values follow the
// GLEC Framework v3.1 default tables.

// Default fallback CO2 factors per mode.
const (
	// DefaultRoadCO2Factor is kg CO2e per km for a diesel truck.
	DefaultRoadCO2Factor = 0.079

	// DefaultRailCO2Factor is kg CO2e per tonne-km for an electric freight train.
	DefaultRailCO2Factor = 0.028

	// DefaultSeaCO2Factor is kg CO2e per tonne-km for an HFO container ship.
	DefaultSeaCO2Factor = 0.011

	// DefaultAirCO2Factor is kg CO2e per tonne-km for a jet-fuel cargo plane.
	DefaultAirCO2Factor = 0.602
)

// Default load factors per mode.
const (
	DefaultRoadLoadFactor = 0.70
	DefaultRailLoadFactor = 0.80
	DefaultSeaLoadFactor  = 0.85
	DefaultAirLoadFactor  = 0.80
)

// MinEffectiveLoadFactor floors the road load-factor divisor so that a
// near-zero utilization cannot blow the adjusted emissions up unbounded.
const MinEffectiveLoadFactor = 0.1

// EmptyReturnMultiplier models an empty return leg at equivalent energy
// cost on top of the laden leg.
const EmptyReturnMultiplier = 1.5

// RadiativeForcingIndex approximates non-CO2 high-altitude warming
// effects. Applied only to air legs, inside the emissions formula; the
// factor echoed in results keeps its raw CO2Factor.
const RadiativeForcingIndex = 1.9

// roadSubTypeLoadFactors refines the road default by vehicle sub-type.
var roadSubTypeLoadFactors = map[string]float64{
	"van":         0.60,
	"light_truck": 0.65,
	"truck":       0.70,
	"heavy_truck": 0.75,
}

// roadVehicleAliases maps common vehicle-type names onto the canonical
// set used by factor lookups. Road only.
var roadVehicleAliases = map[string]string{
	"lorry":       "truck",
	"hgv":         "heavy_truck",
	"semi":        "heavy_truck",
	"articulated": "heavy_truck",
	"pickup":      "van",
}

// splitRatio is a fixed Well-to-Wheel direct/indirect split.
type splitRatio struct {
	direct   float64
	indirect float64
}

// fuelSplitRatios keys the WTW split by fuel type. Electric and hydrogen
// vehicles emit nothing at the tailpipe; everything is upstream.
var fuelSplitRatios = map[FuelType]splitRatio{
	FuelDiesel:    {0.74, 0.26},
	FuelPetrol:    {0.76, 0.24},
	FuelElectric:  {0.00, 1.00},
	FuelHybrid:    {0.50, 0.50},
	FuelBiodiesel: {0.80, 0.20},
	FuelHFO:       {0.72, 0.28},
	FuelMGO:       {0.73, 0.27},
	FuelLNG:       {0.80, 0.20},
	FuelJet:       {0.75, 0.25},
	FuelHydrogen:  {0.00, 1.00},
}

// SplitForFuel returns the WTW direct/indirect split for a fuel type.
// Unknown fuels fall back to the diesel ratio.
func SplitForFuel(fuel FuelType) (direct, indirect float64) {
	r, ok := fuelSplitRatios[fuel]
	if !ok {
		r = fuelSplitRatios[FuelDiesel]
	}
	return r.direct, r.indirect
}

// RoadLoadFactorFor returns the default road load factor for a vehicle
// sub-type, falling back to the generic road default.
func RoadLoadFactorFor(subType string) float64 {
	if lf, ok := roadSubTypeLoadFactors[subType]; ok {
		return lf
	}
	return DefaultRoadLoadFactor
}

// CanonicalRoadVehicleType resolves road vehicle-type aliases. It returns
// the canonical name and whether an alias was rewritten.
func CanonicalRoadVehicleType(vehicleType string) (string, bool) {
	if canonical, ok := roadVehicleAliases[vehicleType]; ok {
		return canonical, true
	}
	return vehicleType, false
}
