package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/period"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// FormatCurrency renders v with two decimals, thousands separators and the
// currency code, e.g. "KES 1,234.56".
func FormatCurrency(v decimal.Decimal, currency string) string {
	s := groupThousands(v.Abs().StringFixed(2))
	if currency != "" {
		s = currency + " " + s
	}
	if v.IsNegative() {
		s = "-" + s
	}
	return s
}

// FormatLargeNumber abbreviates v: 1,250,000 becomes "1.3M", 150,000 becomes
// "150k". Values under 1,000 are printed as-is.
func FormatLargeNumber(v decimal.Decimal) string {
	switch {
	case v.GreaterThanOrEqual(million):
		return v.Div(million).StringFixed(1) + "M"
	case v.GreaterThanOrEqual(thousand):
		return v.Div(thousand).StringFixed(0) + "k"
	default:
		return v.String()
	}
}

// FormatMonth turns a month key like "2025-03" into "Mar". Keys that do not
// parse are returned unchanged.
func FormatMonth(key string) string {
	_, m, err := period.ParseMonthKey(key)
	if err != nil {
		return key
	}
	return time.Month(m).String()[:3]
}

func formatDate(d *time.Time) string {
	if d == nil {
		return "-"
	}
	return d.Format("2006-01-02")
}

// groupThousands inserts commas into the integer part of a plain decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
