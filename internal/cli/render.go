package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carbonroute/carbonroute/internal/engine"
	"github.com/carbonroute/carbonroute/internal/format"
)

// Layout constants.
const (
	labelWidth    = 22
	factorColumns = "%-28s %-6s %-14s %-10s %12s %-5s %-6s %s"
)

// Result rendering styles.
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(labelWidth)
	totalStyle  = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	confStyles  = map[engine.Confidence]lipgloss.Style{
		engine.ConfidenceHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		engine.ConfidenceMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		engine.ConfidenceLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// renderResult lays out one calculation result for terminal display.
func renderResult(r *engine.CalculationResult) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Emissions - %s leg, %s km", r.Activity.Mode, format.Float(r.Activity.Distance, 0))))
	b.WriteString("\n\n")

	row(&b, "Total CO2e", totalStyle.Render(format.Mass(r.Emissions.Total)))
	row(&b, "CO2", format.Mass(r.Emissions.CO2))
	if r.Emissions.CH4 > 0 {
		row(&b, "CH4", fmt.Sprintf("%g kg", r.Emissions.CH4))
	}
	if r.Emissions.N2O > 0 {
		row(&b, "N2O", fmt.Sprintf("%g kg", r.Emissions.N2O))
	}
	if r.Emissions.BiogenicCO2 > 0 {
		row(&b, "Biogenic CO2", format.Mass(r.Emissions.BiogenicCO2))
	}
	row(&b, "Direct (TTW)", format.Mass(r.Breakdown.Direct))
	row(&b, "Indirect (WTT)", format.Mass(r.Breakdown.Indirect))
	if r.Breakdown.FuelProduction > 0 {
		row(&b, "  fuel production", detailStyle.Render(format.Mass(r.Breakdown.FuelProduction)))
		row(&b, "  fuel transport", detailStyle.Render(format.Mass(r.Breakdown.FuelTransport)))
	}

	b.WriteString("\n")
	row(&b, "Intensity", fmt.Sprintf("%g kg CO2e per unit", r.Metrics.EmissionIntensity))
	if r.Metrics.FuelEfficiency > 0 {
		row(&b, "Fuel efficiency", fmt.Sprintf("%g km per unit fuel", r.Metrics.FuelEfficiency))
	}
	row(&b, "Load utilization", format.Float(r.Metrics.LoadUtilization*100, 0)+"%")
	row(&b, "Factor", fmt.Sprintf("%g kg/%s (%s, %s)", r.Factor.CO2Factor, r.Factor.Unit, r.Factor.ID, r.Factor.Scope))
	row(&b, "Method", r.Method)

	conf := confStyles[r.Metadata.Confidence].Render(string(r.Metadata.Confidence))
	row(&b, "Confidence", conf)
	row(&b, "Calculation ID", r.Metadata.CalculationID)
	row(&b, "GLEC version", r.Metadata.GLECVersion)

	if len(r.Metadata.Assumptions) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Assumptions"))
		b.WriteString("\n")
		for _, a := range r.Metadata.Assumptions {
			b.WriteString(detailStyle.Render("  - " + a))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderBatch lays out a batch result: per-item lines, failures, and the
// optional aggregate block.
func renderBatch(r *engine.BatchResult) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Batch - %d succeeded, %d failed", len(r.Individual), len(r.Errors))))
	b.WriteString("\n\n")

	for _, res := range r.Individual {
		line := fmt.Sprintf("%-6s %10s km %10s   %s  [%s]",
			res.Activity.Mode,
			format.Float(res.Activity.Distance, 0),
			format.Mass(res.Emissions.Total),
			res.Metadata.CalculationID,
			res.Metadata.Confidence)
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, e := range r.Errors {
		b.WriteString(errStyle.Render(fmt.Sprintf("item %d failed:", e.Index)))
		b.WriteString(" " + e.Err.Error() + "\n")
	}

	if r.Aggregate != nil {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Aggregate"))
		b.WriteString("\n")
		row(&b, "Total emissions", totalStyle.Render(format.Mass(r.Aggregate.TotalEmissions)))
		row(&b, "Average intensity", fmt.Sprintf("%g kg CO2e per unit", r.Aggregate.AverageIntensity))
		row(&b, "Total distance", format.Float(r.Aggregate.TotalDistance, 0)+" km")
		row(&b, "Total weight", format.Float(r.Aggregate.TotalWeight, 1)+" t")
		row(&b, "Calculations", format.Number(int64(r.Aggregate.CalculationCount)))
	}

	return b.String()
}

// renderFactors lays out the factor dataset as a fixed-width table.
func renderFactors(name string, all []engine.EmissionFactor) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d factors)", name, len(all))))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.UnsetWidth().Render(
		fmt.Sprintf(factorColumns, "ID", "MODE", "VEHICLE", "FUEL", "CO2 FACTOR", "UNIT", "SCOPE", "VERSION")))
	b.WriteString("\n")

	for _, f := range all {
		b.WriteString(fmt.Sprintf(factorColumns,
			f.ID, f.Mode, f.VehicleType, f.Fuel,
			fmt.Sprintf("%g", f.CO2Factor), f.Unit, f.Scope, f.Version))
		b.WriteString("\n")
	}

	return b.String()
}

// renderErrors lays out a validation error list.
func renderErrors(verrs engine.ValidationErrors) string {
	var b strings.Builder

	b.WriteString(errStyle.Render(fmt.Sprintf("Validation failed with %d error(s)", len(verrs))))
	b.WriteString("\n")
	for _, e := range verrs {
		b.WriteString(fmt.Sprintf("  [%s] %s", e.Code, e.Message))
		if e.Field != "" {
			b.WriteString(detailStyle.Render(" (" + e.Field + ")"))
		}
		b.WriteString("\n")
		if e.Suggestion != "" {
			b.WriteString(detailStyle.Render("        hint: " + e.Suggestion))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// row writes one label/value line.
func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
