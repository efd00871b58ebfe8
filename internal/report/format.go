package report

import (
	"math"

	"github.com/leapstack-labs/waterdash/internal/aggregate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoData is shown in place of a metric that has no value.
const NoData = "No data"

// FormatMLD renders a volume rounded half to even with thousands
// separators, e.g. "1,234 MLD".
func FormatMLD(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d MLD", int64(math.RoundToEven(v)))
}

// FormatOptional renders o with FormatMLD, or NoData when absent.
func FormatOptional(o aggregate.Optional) string {
	if !o.Valid {
		return NoData
	}
	return FormatMLD(o.Value)
}

// FormatNumber renders v with thousands separators and no unit.
func FormatNumber(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", int64(math.RoundToEven(v)))
}
