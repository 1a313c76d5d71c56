package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carbonroute/carbonroute/internal/logging"
)

// Engine runs the calculation pipeline. It owns no mutable state beyond
// the injected registry, so a single Engine is safe for concurrent use.
type Engine struct {
	registry *Registry
	provider FactorProvider
}

// New assembles an Engine from a strategy registry and a factor provider.
// The provider may be nil, in which case every calculation uses the
// documented per-mode default factors.
func New(registry *Registry, provider FactorProvider) *Engine {
	return &Engine{
		registry: registry,
		provider: provider,
	}
}

// Calculate runs the pipeline over one request: validate, resolve the
// emission factor, normalize, compute, assemble. It returns either a
// complete result or an error carrying the full validation list, never
// a partial result.
func (e *Engine) Calculate(ctx context.Context, req Request) (*CalculationResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	strategy, err := e.registry.Strategy(req.Activity.Mode)
	if err != nil {
		return nil, err
	}

	if errs := validateOptions(req.Options); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	// Stage 1: validate. Every defect is collected before reporting.
	if errs := strategy.Validate(req.Activity); len(errs) > 0 {
		log.Debug().
			Str("component", "engine").
			Str("operation", "calculate").
			Str("mode", req.Activity.Mode.String()).
			Int("error_count", len(errs)).
			Msg("activity validation failed")
		return nil, ValidationErrors(errs)
	}

	// Stage 2: resolve the emission factor. Lookup failures degrade to
	// the mode default and are recorded as assumptions, never errors.
	factor, factorAssumptions := e.resolveFactor(ctx, strategy, req.Activity)

	// Stage 3: normalize defaults and aliases.
	normalized, normalizeAssumptions := strategy.Normalize(req.Activity)

	// Stage 4: mode-specific computation.
	comp := strategy.Compute(normalized, factor)

	// Stage 5: assemble the result.
	assumptions := make([]string, 0, len(factorAssumptions)+len(normalizeAssumptions)+len(comp.Assumptions))
	assumptions = append(assumptions, factorAssumptions...)
	assumptions = append(assumptions, normalizeAssumptions...)
	assumptions = append(assumptions, comp.Assumptions...)

	result := assemble(normalized, factor, comp, req.Options, assumptions)

	log.Info().
		Str("component", "engine").
		Str("operation", "calculate").
		Str("mode", normalized.Mode.String()).
		Str("calculation_id", result.Metadata.CalculationID).
		Float64("total_co2e_kg", result.Emissions.Total).
		Str("confidence", string(result.Metadata.Confidence)).
		Int64("duration_us", time.Since(start).Microseconds()).
		Msg("calculation complete")

	return result, nil
}

// resolveFactor asks the provider for a matching factor and substitutes
// the strategy default when the lookup errors or comes back empty. The
// substitution is silent to the caller besides the assumption string;
// the underlying lookup error stays visible in the logs so genuine data
// problems are not masked entirely.
func (e *Engine) resolveFactor(ctx context.Context, strategy Strategy, activity ActivityData) (EmissionFactor, []string) {
	log := logging.FromContext(ctx)

	vehicleType, _ := CanonicalRoadVehicleType(activity.Vehicle.Type)
	if activity.Mode != ModeRoad {
		vehicleType = activity.Vehicle.Type
	}

	if e.provider != nil {
		factors, err := e.provider.Lookup(ctx, activity.Mode, vehicleType, activity.Vehicle.Fuel)
		if err == nil && len(factors) > 0 {
			return factors[0], nil
		}
		if err != nil {
			log.Warn().
				Str("component", "engine").
				Str("operation", "resolve_factor").
				Str("mode", activity.Mode.String()).
				Str("vehicle_type", vehicleType).
				Str("fuel_type", activity.Vehicle.Fuel.String()).
				Err(err).
				Msg("factor lookup failed, substituting default factor")
		}
	}

	factor := strategy.DefaultFactor()
	assumption := fmt.Sprintf(
		"no emission factor found for %s/%s/%s; applied GLEC default %g kg CO2e/%s",
		activity.Mode, vehicleType, activity.Vehicle.Fuel, factor.CO2Factor, factor.Unit)
	return factor, []string{assumption}
}

// assemble combines the computation into the final result: GWP totals,
// rounding, intensity metrics, confidence rating, and audit metadata.
func assemble(activity ActivityData, factor EmissionFactor, comp Computation, opts *Options, assumptions []string) *CalculationResult {
	precision := opts.precision()

	co2 := roundTo(comp.CO2, precision)
	ch4 := roundTo(comp.CH4, precision)
	n2o := roundTo(comp.N2O, precision)
	total := roundTo(CO2Equivalent(comp.CO2, comp.CH4, comp.N2O), precision)

	// Direct is rounded independently; indirect takes the remainder so
	// the two always sum to the reported CO2 mass exactly.
	direct := roundTo(comp.Direct, precision)
	indirect := roundTo(co2-direct, precision)

	breakdown := Breakdown{
		Direct:   direct,
		Indirect: indirect,
	}
	if opts.indirectEnabled() && indirect > 0 {
		// Upstream Well-to-Tank detail: fuel production dominates the
		// indirect share, the rest is fuel distribution.
		production := roundTo(indirect*upstreamProductionShare, precision)
		breakdown.FuelProduction = production
		breakdown.FuelTransport = roundTo(indirect-production, precision)
	}

	emissions := Emissions{
		CO2:   co2,
		CH4:   ch4,
		N2O:   n2o,
		Total: total,
	}
	if opts != nil && opts.IncludeBiogenic && activity.Vehicle.Fuel == FuelBiodiesel {
		emissions.BiogenicCO2 = direct
		assumptions = append(assumptions,
			"biodiesel combustion CO2 reported as biogenic; not subtracted from total")
	}

	metrics := Metrics{
		EmissionIntensity: roundTo(intensity(activity, total), metricPrecision),
		LoadUtilization:   appliedLoadFactor(activity),
	}
	if activity.FuelConsumed > 0 {
		metrics.FuelEfficiency = roundTo(activity.Distance/activity.FuelConsumed, metricPrecision)
	}

	score := ConfidenceScore(activity, factor)

	return &CalculationResult{
		Activity:  activity,
		Factor:    factor,
		Method:    comp.Method,
		Emissions: emissions,
		Breakdown: breakdown,
		Metrics:   metrics,
		Metadata: Metadata{
			CalculatedAt:  time.Now().UTC(),
			CalculationID: newCalculationID(activity.Mode),
			GLECVersion:   GLECVersion,
			Confidence:    ConfidenceLevel(score),
			Assumptions:   assumptions,
		},
	}
}

// upstreamProductionShare is the fuel-production share of indirect
// emissions; the remainder is fuel distribution and transport.
const upstreamProductionShare = 0.7

// metricPrecision is the fixed rounding applied to intensity and
// efficiency metrics. Intensities are small (kg per tonne-km), so the
// caller-facing mass precision would truncate them to zero.
const metricPrecision = 6

// intensity picks the densest available denominator for the emission
// intensity metric.
func intensity(activity ActivityData, total float64) float64 {
	switch {
	case activity.Weight > 0 && activity.Distance > 0:
		return total / (activity.Weight * activity.Distance)
	case activity.Distance > 0:
		return total / activity.Distance
	default:
		return total
	}
}

// appliedLoadFactor reports the utilization that went into the formula.
func appliedLoadFactor(activity ActivityData) float64 {
	if activity.LoadFactor != nil {
		return *activity.LoadFactor
	}
	return 0
}

// newCalculationID builds a collision-resistant identifier from the mode
// and a ULID, which itself encodes timestamp plus random entropy.
func newCalculationID(mode TransportMode) string {
	return fmt.Sprintf("%s-%s", mode, ulid.Make().String())
}

// validateOptions checks the per-request options independently of mode.
func validateOptions(opts *Options) []CalculationError {
	if opts == nil || opts.RoundingPrecision == nil {
		return nil
	}
	if p := *opts.RoundingPrecision; p < 0 || p > MaxRoundingPrecision {
		return []CalculationError{{
			Code:       CodeInvalidPrecision,
			Message:    fmt.Sprintf("rounding precision must be within [0,%d], got %d", MaxRoundingPrecision, p),
			Field:      "options.roundingPrecision",
			Suggestion: "use a precision between 0 and 6 decimal places",
		}}
	}
	return nil
}

// roundTo rounds v to p decimal places.
func roundTo(v float64, p int) float64 {
	scale := math.Pow(10, float64(p))
	return math.Round(v*scale) / scale
}
