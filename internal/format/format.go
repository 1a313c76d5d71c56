// Package format provides locale-aware number formatting for CLI output.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer. English locale keeps
// thousand separators consistent across environments.
var printer = message.NewPrinter(language.English)

// Number formats an integer with thousand separators.
// Example: Number(18248) returns "18,248".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Float formats a float with the given precision and thousand separators
// on the integer part. Example: Float(14297.5, 2) returns "14,297.50".
func Float(f float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	rounded := math.Round(f*scale) / scale

	if precision <= 0 {
		return Number(int64(rounded))
	}
	verb := fmt.Sprintf("%%.%df", precision)
	return printer.Sprintf(verb, rounded)
}

// Mass formats a kilogram value for display, switching to tonnes above
// one thousand kilograms.
func Mass(kg float64) string {
	const tonneThreshold = 1000.0
	if math.Abs(kg) >= tonneThreshold {
		return fmt.Sprintf("%s t", Float(kg/tonneThreshold, 2))
	}
	return fmt.Sprintf("%s kg", Float(kg, 2))
}
