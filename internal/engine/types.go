package engine

import (
	"fmt"
	"time"
)

// GLECVersion is the accounting framework version implemented by the engine.
// All results carry this version in their metadata.
const GLECVersion = "3.1"

// TransportMode identifies the transport leg type of an activity.
type TransportMode string

// Supported transport modes.
const (
	ModeRoad TransportMode = "road"
	ModeRail TransportMode = "rail"
	ModeSea  TransportMode = "sea"
	ModeAir  TransportMode = "air"
)

// Valid reports whether the mode is one of the supported transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeRoad, ModeRail, ModeSea, ModeAir:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the mode.
func (m TransportMode) String() string { return string(m) }

// ParseTransportMode converts a string to a TransportMode.
// It returns ErrUnsupportedMode for values outside the closed set.
func ParseTransportMode(s string) (TransportMode, error) {
	m := TransportMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
	return m, nil
}

// FuelType is the closed enumeration of fuels the engine understands.
type FuelType string

// Supported fuel types.
const (
	FuelDiesel    FuelType = "diesel"
	FuelPetrol    FuelType = "petrol"
	FuelElectric  FuelType = "electric"
	FuelHybrid    FuelType = "hybrid"
	FuelHFO       FuelType = "hfo"
	FuelMGO       FuelType = "mgo"
	FuelLNG       FuelType = "lng"
	FuelJet       FuelType = "jet_fuel"
	FuelBiodiesel FuelType = "biodiesel"
	FuelHydrogen  FuelType = "hydrogen"
)

// Valid reports whether the fuel type is part of the closed enumeration.
func (f FuelType) Valid() bool {
	switch f {
	case FuelDiesel, FuelPetrol, FuelElectric, FuelHybrid, FuelHFO,
		FuelMGO, FuelLNG, FuelJet, FuelBiodiesel, FuelHydrogen:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the fuel type.
func (f FuelType) String() string { return string(f) }

// FactorUnit describes how an emission factor is applied to activity data.
type FactorUnit string

// Factor application units.
const (
	// UnitKm applies the factor per kilometer traveled.
	UnitKm FactorUnit = "km"
	// UnitTonneKm applies the factor per tonne-kilometer of cargo moved.
	UnitTonneKm FactorUnit = "tkm"
	// UnitKgFuel applies the factor per kilogram of fuel consumed.
	UnitKgFuel FactorUnit = "kg_fuel"
	// UnitKWh applies the factor per kilowatt-hour of energy consumed.
	UnitKWh FactorUnit = "kwh"
)

// FactorScope is the emissions accounting scope of a factor.
type FactorScope string

// Factor scopes.
const (
	// ScopeTTW covers end-use combustion only (Tank-to-Wheel).
	ScopeTTW FactorScope = "ttw"
	// ScopeWTW covers fuel production plus end-use combustion (Well-to-Wheel).
	ScopeWTW FactorScope = "wtw"
)

// VehicleCategory describes the vehicle performing a transport leg.
type VehicleCategory struct {
	// Type is the vehicle class, e.g. "truck", "freight_train", "container_ship".
	Type string `json:"type" yaml:"type"`

	// SubType refines the class, e.g. "heavy_truck" load-factor defaults.
	SubType string `json:"subType,omitempty" yaml:"subType,omitempty"`

	// Capacity is the nominal cargo capacity in tonnes, if known.
	Capacity float64 `json:"capacity,omitempty" yaml:"capacity,omitempty"`

	// Fuel is the vehicle's fuel type.
	Fuel FuelType `json:"fuelType" yaml:"fuelType"`
}

// ActivityData is the raw activity input for a single transport leg.
//
// Distance is required and must be positive for every mode. Weight is
// required and positive for the tonne-distance modes (rail, sea, air)
// and optional for road. LoadFactor, when set, must lie in [0,1]; a nil
// LoadFactor means the mode's documented default applies.
type ActivityData struct {
	Mode         TransportMode   `json:"transportMode" yaml:"transportMode"`
	Vehicle      VehicleCategory `json:"vehicle" yaml:"vehicle"`
	Distance     float64         `json:"distance" yaml:"distance"`
	Weight       float64         `json:"weight,omitempty" yaml:"weight,omitempty"`
	Volume       float64         `json:"volume,omitempty" yaml:"volume,omitempty"`
	LoadFactor   *float64        `json:"loadFactor,omitempty" yaml:"loadFactor,omitempty"`
	EmptyReturn  bool            `json:"emptyReturn,omitempty" yaml:"emptyReturn,omitempty"`
	RouteType    string          `json:"routeType,omitempty" yaml:"routeType,omitempty"`
	FuelConsumed float64         `json:"fuelConsumed,omitempty" yaml:"fuelConsumed,omitempty"`
	EnergyUnit   string          `json:"energyUnit,omitempty" yaml:"energyUnit,omitempty"`
}

// EmissionFactor is a single emission factor record.
//
// CO2Factor must be non-negative. Unit determines whether the factor is
// applied per kilometer or per tonne-kilometer; CH4Factor and N2OFactor
// are optional sub-factors in kg per the same unit.
type EmissionFactor struct {
	ID          string        `json:"id" yaml:"id"`
	Mode        TransportMode `json:"transportMode" yaml:"transportMode"`
	VehicleType string        `json:"vehicleType" yaml:"vehicleType"`
	Fuel        FuelType      `json:"fuelType" yaml:"fuelType"`
	CO2Factor   float64       `json:"co2Factor" yaml:"co2Factor"`
	CH4Factor   float64       `json:"ch4Factor,omitempty" yaml:"ch4Factor,omitempty"`
	N2OFactor   float64       `json:"n2oFactor,omitempty" yaml:"n2oFactor,omitempty"`
	Unit        FactorUnit    `json:"unit" yaml:"unit"`
	Scope       FactorScope   `json:"scope" yaml:"scope"`
	Source      string        `json:"source" yaml:"source"`
	Version     string        `json:"version" yaml:"version"`
	Region      string        `json:"region,omitempty" yaml:"region,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Confidence is the qualitative confidence rating of a result.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Emissions holds per-gas masses in kilograms plus the CO2-equivalent total.
type Emissions struct {
	// CO2 is the carbon dioxide mass in kg.
	CO2 float64 `json:"co2"`

	// CH4 is the methane mass in kg (0 when the factor has no sub-factor).
	CH4 float64 `json:"ch4,omitempty"`

	// N2O is the nitrous oxide mass in kg (0 when the factor has no sub-factor).
	N2O float64 `json:"n2o,omitempty"`

	// BiogenicCO2 is the biogenic CO2 share in kg, reported only when
	// the caller opts in and the fuel has a biogenic component. It is
	// informational and never subtracted from Total.
	BiogenicCO2 float64 `json:"biogenicCo2,omitempty"`

	// Total is the CO2-equivalent mass in kg after GWP conversion.
	Total float64 `json:"total"`
}

// Breakdown splits the CO2 mass into direct and indirect shares.
// Direct + Indirect equals Emissions.CO2 at the configured precision.
type Breakdown struct {
	Direct         float64 `json:"directEmissions"`
	Indirect       float64 `json:"indirectEmissions"`
	FuelProduction float64 `json:"fuelProduction,omitempty"`
	FuelTransport  float64 `json:"fuelTransport,omitempty"`
}

// Metrics carries derived intensity and efficiency figures.
type Metrics struct {
	// EmissionIntensity is Total divided by tonne-km when weight and
	// distance are both present, by distance when only distance is, and
	// the raw total otherwise.
	EmissionIntensity float64 `json:"emissionIntensity"`

	// FuelEfficiency is distance / fuelConsumed, 0 when fuel data is absent.
	FuelEfficiency float64 `json:"fuelEfficiency,omitempty"`

	// LoadUtilization is the load factor that was actually applied.
	LoadUtilization float64 `json:"loadUtilization"`
}

// Metadata is the audit trail attached to every result.
type Metadata struct {
	CalculatedAt  time.Time  `json:"calculatedAt"`
	CalculationID string     `json:"calculationId"`
	GLECVersion   string     `json:"glecVersion"`
	Confidence    Confidence `json:"confidence"`
	Assumptions   []string   `json:"assumptions"`
}

// CalculationResult is the fully-populated outcome of one pipeline run.
type CalculationResult struct {
	Activity  ActivityData   `json:"activityData"`
	Factor    EmissionFactor `json:"factor"`
	Method    string         `json:"method"`
	Emissions Emissions      `json:"emissions"`
	Breakdown Breakdown      `json:"breakdown"`
	Metrics   Metrics        `json:"metrics"`
	Metadata  Metadata       `json:"metadata"`
}

// Options tunes a single calculation.
type Options struct {
	// IncludeIndirectEmissions enables the fuelProduction/fuelTransport
	// detail inside the breakdown. Defaults to true.
	IncludeIndirectEmissions *bool `json:"includeIndirectEmissions,omitempty" yaml:"includeIndirectEmissions,omitempty"`

	// RoundingPrecision is the number of decimal places (0..6) applied
	// to reported masses and metrics. Defaults to 2.
	RoundingPrecision *int `json:"roundingPrecision,omitempty" yaml:"roundingPrecision,omitempty"`

	// IncludeBiogenic reports the biogenic CO2 share for biofuels.
	IncludeBiogenic bool `json:"includeBiogenic,omitempty" yaml:"includeBiogenic,omitempty"`
}

// DefaultRoundingPrecision is applied when Options.RoundingPrecision is nil.
const DefaultRoundingPrecision = 2

// MaxRoundingPrecision is the upper bound for Options.RoundingPrecision.
const MaxRoundingPrecision = 6

// Request is one calculation request: a transport leg plus options.
type Request struct {
	Activity ActivityData `json:"activityData" yaml:"activityData"`
	Options  *Options     `json:"options,omitempty" yaml:"options,omitempty"`
}

// indirectEnabled resolves the IncludeIndirectEmissions default.
func (o *Options) indirectEnabled() bool {
	if o == nil || o.IncludeIndirectEmissions == nil {
		return true
	}
	return *o.IncludeIndirectEmissions
}

// precision resolves the rounding precision default.
func (o *Options) precision() int {
	if o == nil || o.RoundingPrecision == nil {
		return DefaultRoundingPrecision
	}
	return *o.RoundingPrecision
}
