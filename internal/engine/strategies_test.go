package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRailDefaultFactorScenario(t *testing.T) {
	// Electric freight, 300 km, 50 t: 15000 tkm x 0.028 = 420 kg,
	// divided by the 0.8 default load factor = 525 kg, split 10/90.
	eng := newTestEngine()

	result, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode:     ModeRail,
		Distance: 300,
		Weight:   50,
		Vehicle: VehicleCategory{
			Type: "freight_train",
			Fuel: FuelElectric,
		},
	}})
	require.NoError(t, err)

	assert.InDelta(t, 525.0, result.Emissions.CO2, 0.01)
	assert.InDelta(t, 52.5, result.Breakdown.Direct, 0.01)
	assert.InDelta(t, 472.5, result.Breakdown.Indirect, 0.01)
	assert.Equal(t, "default-rail-electric-freight", result.Factor.ID)
}

func TestSeaDefaultFactorScenario(t *testing.T) {
	eng := newTestEngine()

	result, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode:     ModeSea,
		Distance: 8000,
		Weight:   200,
		Vehicle: VehicleCategory{
			Type: "container_ship",
			Fuel: FuelHFO,
		},
	}})
	require.NoError(t, err)

	// 1,600,000 tkm x 0.011 = 17600 kg / 0.85 default load factor.
	want := 8000.0 * 200.0 * 0.011 / 0.85
	assert.InDelta(t, want, result.Emissions.CO2, 0.01)
	assert.InDelta(t, result.Emissions.CO2*0.72, result.Breakdown.Direct, 0.01)
	assert.InDelta(t, result.Emissions.CO2, result.Breakdown.Direct+result.Breakdown.Indirect, 1e-9)
	assert.True(t, hasAssumptionContaining(result, "0.85"))
}

func TestAirDefaultFactorScenario(t *testing.T) {
	// Jet fuel, 2000 km, 5 t: 10000 tkm x 0.602 x RFI 1.9 = 11438 kg,
	// divided by the 0.8 default load factor = 14297.5 kg, split 75/25.
	eng := newTestEngine()

	result, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode:     ModeAir,
		Distance: 2000,
		Weight:   5,
		Vehicle: VehicleCategory{
			Type: "cargo_plane",
			Fuel: FuelJet,
		},
	}})
	require.NoError(t, err)

	assert.InDelta(t, 14297.5, result.Emissions.CO2, 0.01)
	assert.InDelta(t, 10723.1, result.Breakdown.Direct, 0.05)
	assert.InDelta(t, 3574.4, result.Breakdown.Indirect, 0.05)
	assert.InDelta(t, result.Emissions.CO2, result.Breakdown.Direct+result.Breakdown.Indirect, 1e-9)
	assert.True(t, hasAssumptionContaining(result, "radiative forcing"))

	// The echoed factor keeps its raw value; the RFI lives only in the formula.
	assert.InDelta(t, 0.602, result.Factor.CO2Factor, 1e-9)
}

func TestAirRFIAppliedOnlyToAir(t *testing.T) {
	eng := newTestEngine()
	lf := 1.0

	rail, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode: ModeRail, Distance: 100, Weight: 10, LoadFactor: &lf,
		Vehicle: VehicleCategory{Type: "freight_train", Fuel: FuelElectric},
	}})
	require.NoError(t, err)
	assert.InDelta(t, 100*10*0.028, rail.Emissions.CO2, 1e-9, "no RFI on rail")

	air, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
		Mode: ModeAir, Distance: 100, Weight: 10, LoadFactor: &lf,
		Vehicle: VehicleCategory{Type: "cargo_plane", Fuel: FuelJet},
	}})
	require.NoError(t, err)
	assert.InDelta(t, 100*10*0.602*1.9, air.Emissions.CO2, 0.01)
}

func TestMassBasedModesRequireWeight(t *testing.T) {
	eng := newTestEngine()

	for _, mode := range []TransportMode{ModeRail, ModeSea, ModeAir} {
		t.Run(string(mode), func(t *testing.T) {
			_, err := eng.Calculate(context.Background(), Request{Activity: ActivityData{
				Mode:     mode,
				Distance: 100,
				Weight:   0,
			}})
			require.Error(t, err)

			verrs, ok := AsValidationErrors(err)
			require.True(t, ok)
			assert.True(t, verrs.Has(CodeInvalidWeight))
		})
	}
}

func TestTonneKmSubFactors(t *testing.T) {
	provider := &stubProvider{
		factors: []EmissionFactor{{
			ID:        "rail-diesel",
			Mode:      ModeRail,
			Fuel:      FuelDiesel,
			CO2Factor: 0.046,
			CH4Factor: 0.000002,
			N2OFactor: 0.000002,
			Unit:      UnitTonneKm,
			Scope:     ScopeWTW,
		}},
	}
	eng := New(NewRegistry(), provider)

	lf := 1.0
	precision := 6
	result, err := eng.Calculate(context.Background(), Request{
		Activity: ActivityData{
			Mode: ModeRail, Distance: 1000, Weight: 100, LoadFactor: &lf,
			Vehicle: VehicleCategory{Type: "freight_train", Fuel: FuelDiesel},
		},
		Options: &Options{RoundingPrecision: &precision},
	})
	require.NoError(t, err)

	// 100000 tkm x 0.000002 = 0.2 kg of each sub-gas.
	assert.InDelta(t, 0.2, result.Emissions.CH4, 1e-6)
	assert.InDelta(t, 0.2, result.Emissions.N2O, 1e-6)

	wantTotal := result.Emissions.CO2 + 0.2*GWPCH4 + 0.2*GWPN2O
	assert.InDelta(t, wantTotal, result.Emissions.Total, 1e-3)
}
