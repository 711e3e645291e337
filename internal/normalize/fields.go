package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
)

var (
	leadingInt     = regexp.MustCompile(`^\s*([+-]?\d+)`)
	nonNumeric     = regexp.MustCompile(`[^0-9.\-]+`)
	leadingDecimal = regexp.MustCompile(`^-?(\d+(\.\d+)?|\.\d+)`)
)

// dateLayouts are tried in order; the first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006/1/2",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"Mon Jan 2 2006",
}

// ParseInt reads the leading integer of raw. Trailing text is ignored.
func ParseInt(raw string) Outcome[int] {
	m := leadingInt.FindStringSubmatch(raw)
	if m == nil {
		return Defaulted(0, raw, "not an integer, defaulting to 0")
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return Defaulted(0, raw, "integer out of range, defaulting to 0")
	}
	return Ok(v)
}

// ParseCustomerID is ParseInt restricted to non-negative values.
func ParseCustomerID(raw string) Outcome[int] {
	o := ParseInt(raw)
	if !o.Defaulted && o.Value < 0 {
		return Defaulted(0, raw, "negative customer id, defaulting to 0")
	}
	return o
}

// ParseAmount strips everything except digits, '.' and '-' and reads the
// leading decimal literal of what remains.
func ParseAmount(raw string) Outcome[decimal.Decimal] {
	if raw == "" {
		return Defaulted(decimal.Zero, raw, "empty amount, defaulting to 0")
	}
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return Defaulted(decimal.Zero, raw, "no numeric content, defaulting to 0")
	}
	lit := leadingDecimal.FindString(cleaned)
	if lit == "" {
		return Defaulted(decimal.Zero, raw, "not a number, defaulting to 0")
	}
	v, err := decimal.NewFromString(lit)
	if err != nil {
		return Defaulted(decimal.Zero, raw, "not a number, defaulting to 0")
	}
	return Ok(v)
}

// ParseDate reads a calendar date. Empty input is absent without a
// diagnostic; unrecognized input is absent with one.
func ParseDate(raw string) Outcome[*time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Ok[*time.Time](nil)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return Ok(&d)
	}
	return Defaulted[*time.Time](nil, raw, "unrecognized date, treating as absent")
}

// ParseGender maps m/male and f/female (any case) and everything else to Other.
func ParseGender(raw string) model.Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male":
		return model.GenderMale
	case "f", "female":
		return model.GenderFemale
	default:
		return model.GenderOther
	}
}

// Text passes raw through, substituting model.Unknown for empty input.
func Text(raw string) string {
	if raw == "" {
		return model.Unknown
	}
	return raw
}
