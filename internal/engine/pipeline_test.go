package engine

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a canned FactorProvider for pipeline tests.
type stubProvider struct {
	factors []EmissionFactor
	err     error
	calls   atomic.Int64
}

func (s *stubProvider) Lookup(_ context.Context, _ TransportMode, _ string, _ FuelType) ([]EmissionFactor, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.factors, nil
}

// hasAssumptionContaining reports whether any assumption contains substr.
func hasAssumptionContaining(result *CalculationResult, substr string) bool {
	for _, a := range result.Metadata.Assumptions {
		if strings.Contains(a, substr) {
			return true
		}
	}
	return false
}

func TestCalculateUsesProviderFactor(t *testing.T) {
	provider := &stubProvider{
		factors: []EmissionFactor{{
			ID:          "road-truck-diesel-wtw",
			Mode:        ModeRoad,
			VehicleType: "truck",
			Fuel:        FuelDiesel,
			CO2Factor:   0.105,
			Unit:        UnitKm,
			Scope:       ScopeWTW,
			Region:      "EU",
			Version:     "3.1.0",
		}},
	}
	eng := New(NewRegistry(), provider)

	result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
	require.NoError(t, err)

	assert.Equal(t, "road-truck-diesel-wtw", result.Factor.ID)
	assert.EqualValues(t, 1, provider.calls.Load())
	assert.False(t, hasAssumptionContaining(result, "no emission factor found"),
		"a confirmed factor must not be reported as a substitution")
}

func TestCalculateDegradesOnLookupError(t *testing.T) {
	provider := &stubProvider{err: errors.New("factor store unavailable")}
	eng := New(NewRegistry(), provider)

	result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
	require.NoError(t, err, "lookup failures must never surface as calculation errors")

	assert.Equal(t, "default-road-diesel-truck", result.Factor.ID)
	assert.True(t, hasAssumptionContaining(result, "applied GLEC default"))
}

func TestCalculateDegradesOnEmptyLookup(t *testing.T) {
	provider := &stubProvider{factors: nil}
	eng := New(NewRegistry(), provider)

	result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
	require.NoError(t, err)
	assert.True(t, hasAssumptionContaining(result, "applied GLEC default"))
}

func TestCalculateUnsupportedMode(t *testing.T) {
	eng := newTestEngine()

	_, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode:     "teleport",
		Distance: 100,
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedMode)
}

func TestCalculateInvalidPrecision(t *testing.T) {
	eng := newTestEngine()

	for _, p := range []int{-1, 7, 12} {
		precision := p
		_, err := eng.Calculate(context.Background(), Request{
			Activity: roadActivity(),
			Options:  &Options{RoundingPrecision: &precision},
		})
		require.Error(t, err)

		verrs, ok := AsValidationErrors(err)
		require.True(t, ok)
		assert.True(t, verrs.Has(CodeInvalidPrecision))
	}
}

func TestCalculateRoundingPrecision(t *testing.T) {
	eng := newTestEngine()

	precision := 4
	result, err := eng.Calculate(context.Background(), Request{
		Activity: roadActivity(),
		Options:  &Options{RoundingPrecision: &precision},
	})
	require.NoError(t, err)

	// 39.5 / 0.7 at four decimals.
	assert.InDelta(t, 56.4286, result.Emissions.CO2, 1e-9)
}

func TestCalculateMetadata(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
	require.NoError(t, err)

	assert.Equal(t, GLECVersion, result.Metadata.GLECVersion)
	assert.False(t, result.Metadata.CalculatedAt.IsZero())
	assert.True(t, strings.HasPrefix(result.Metadata.CalculationID, "road-"))
	assert.Greater(t, len(result.Metadata.CalculationID), len("road-")+20,
		"calculation id needs timestamp plus random entropy")
}

func TestCalculationIDsAreUnique(t *testing.T) {
	eng := newTestEngine()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
		require.NoError(t, err)
		assert.False(t, seen[result.Metadata.CalculationID], "duplicate calculation id")
		seen[result.Metadata.CalculationID] = true
	}
}

func TestCalculateIntensityMetric(t *testing.T) {
	eng := newTestEngine()

	t.Run("weight and distance use tonne-km denominator", func(t *testing.T) {
		result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
		require.NoError(t, err)

		want := result.Emissions.Total / (25 * 500)
		assert.InDelta(t, want, result.Metrics.EmissionIntensity, 1e-4)
	})

	t.Run("distance only uses per-km denominator", func(t *testing.T) {
		activity := roadActivity()
		activity.Weight = 0

		result, err := eng.Calculate(context.Background(), Request{Activity: activity})
		require.NoError(t, err)

		want := result.Emissions.Total / 500
		assert.InDelta(t, want, result.Metrics.EmissionIntensity, 1e-4)
	})
}

func TestCalculateFuelEfficiency(t *testing.T) {
	eng := newTestEngine()

	activity := roadActivity()
	activity.FuelConsumed = 200

	result, err := eng.Calculate(context.Background(), Request{Activity: activity})
	require.NoError(t, err)

	assert.InDelta(t, 2.5, result.Metrics.FuelEfficiency, 1e-9)
}

func TestCalculateIndirectDetailToggle(t *testing.T) {
	eng := newTestEngine()

	withDetail, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
	require.NoError(t, err)
	assert.Greater(t, withDetail.Breakdown.FuelProduction, 0.0)
	assert.InDelta(t, withDetail.Breakdown.Indirect,
		withDetail.Breakdown.FuelProduction+withDetail.Breakdown.FuelTransport, 1e-9)

	off := false
	without, err := eng.Calculate(context.Background(), Request{
		Activity: roadActivity(),
		Options:  &Options{IncludeIndirectEmissions: &off},
	})
	require.NoError(t, err)
	assert.Zero(t, without.Breakdown.FuelProduction)
	assert.Zero(t, without.Breakdown.FuelTransport)
	assert.Equal(t, withDetail.Breakdown.Indirect, without.Breakdown.Indirect,
		"the direct/indirect split itself is unaffected by the detail toggle")
}

func TestCalculateBiogenicReporting(t *testing.T) {
	eng := newTestEngine()

	activity := roadActivity()
	activity.Vehicle.Fuel = FuelBiodiesel

	result, err := eng.Calculate(context.Background(), Request{
		Activity: activity,
		Options:  &Options{IncludeBiogenic: true},
	})
	require.NoError(t, err)

	assert.Greater(t, result.Emissions.BiogenicCO2, 0.0)
	assert.True(t, hasAssumptionContaining(result, "biogenic"))
	// Reporting is informational: the CO2e total is unchanged.
	plain, err := eng.Calculate(context.Background(), Request{Activity: activity})
	require.NoError(t, err)
	assert.Equal(t, plain.Emissions.Total, result.Emissions.Total)
}

func TestCalculateLoadUtilizationReported(t *testing.T) {
	eng := newTestEngine()

	t.Run("explicit load factor echoed", func(t *testing.T) {
		lf := 0.55
		activity := roadActivity()
		activity.LoadFactor = &lf

		result, err := eng.Calculate(context.Background(), Request{Activity: activity})
		require.NoError(t, err)
		assert.InDelta(t, 0.55, result.Metrics.LoadUtilization, 1e-9)
	})

	t.Run("default load factor echoed", func(t *testing.T) {
		result, err := eng.Calculate(context.Background(), Request{Activity: roadActivity()})
		require.NoError(t, err)
		assert.InDelta(t, 0.70, result.Metrics.LoadUtilization, 1e-9)
		assert.True(t, hasAssumptionContaining(result, "load factor not provided"))
	})
}
