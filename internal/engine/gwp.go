package engine

// Global Warming Potential multipliers (100-year horizon, GLEC v3.1).
// A non-CO2 gas mass multiplied by its GWP yields kg CO2e.
const (
	// GWPCO2 is the reference multiplier for carbon dioxide.
	GWPCO2 = 1.0

	// GWPCH4 is the multiplier for methane.
	GWPCH4 = 28.0

	// GWPN2O is the multiplier for nitrous oxide.
	GWPN2O = 265.0
)

// CO2Equivalent converts per-gas masses in kilograms to a single
// CO2-equivalent mass. Absent gases are passed as zero.
func CO2Equivalent(co2, ch4, n2o float64) float64 {
	return co2*GWPCO2 + ch4*GWPCH4 + n2o*GWPN2O
}
