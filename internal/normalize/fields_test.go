package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus-dev/nexus/internal/model"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw       string
		want      int
		defaulted bool
	}{
		{"42", 42, false},
		{"  7", 7, false},
		{"-3", -3, false},
		{"+8", 8, false},
		{"42abc", 42, false},
		{"4.7", 4, false},
		{"", 0, true},
		{"abc", 0, true},
		{"99999999999999999999999", 0, true},
	}
	for _, tt := range tests {
		got := ParseInt(tt.raw)
		assert.Equal(t, tt.want, got.Value, "ParseInt(%q)", tt.raw)
		assert.Equal(t, tt.defaulted, got.Defaulted, "ParseInt(%q) defaulted", tt.raw)
	}
}

func TestParseCustomerID_Negative(t *testing.T) {
	got := ParseCustomerID("-12")
	assert.True(t, got.Defaulted)
	assert.Equal(t, 0, got.Value)
	assert.Equal(t, "-12", got.Raw)

	assert.Equal(t, 0, ParseCustomerID("0").Value)
	assert.False(t, ParseCustomerID("0").Defaulted)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw       string
		want      string
		defaulted bool
	}{
		{"1500.00", "1500", false},
		{"1,000.50", "1000.5", false},
		{"KES 2,500", "2500", false},
		{"$-20.25", "-20.25", false},
		{".5", "0.5", false},
		{"5.", "5", false},
		{"1.2.3", "1.2", false},
		{"12-3", "12", false},
		{"", "0", true},
		{"N/A", "0", true},
		{"-", "0", true},
		{"--5", "0", true},
		{"...", "0", true},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.raw)
		assert.True(t, got.Value.Equal(decimal.RequireFromString(tt.want)), "ParseAmount(%q) = %s", tt.raw, got.Value)
		assert.Equal(t, tt.defaulted, got.Defaulted, "ParseAmount(%q) defaulted", tt.raw)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	inputs := []string{
		"2024-03-15",
		"2024-3-15",
		"3/15/2024",
		"03/15/2024",
		"2024/03/15",
		"2024-03-15T10:30:00Z",
		"2024-03-15T23:30:00+03:00",
		"2024-03-15 08:00:00",
		"Mar 15, 2024",
		"March 15, 2024",
		"15 Mar 2024",
		"15-Mar-2024",
		"Fri Mar 15 2024",
		"  2024-03-15  ",
	}
	for _, in := range inputs {
		got := ParseDate(in)
		require.False(t, got.Defaulted, "ParseDate(%q)", in)
		require.NotNil(t, got.Value, "ParseDate(%q)", in)
		assert.True(t, want.Equal(*got.Value), "ParseDate(%q) = %s", in, got.Value)
	}
}

func TestParseDate_Absent(t *testing.T) {
	empty := ParseDate("")
	assert.Nil(t, empty.Value)
	assert.False(t, empty.Defaulted, "empty is absent, not degraded")

	bad := ParseDate("not a date")
	assert.Nil(t, bad.Value)
	assert.True(t, bad.Defaulted)

	invalid := ParseDate("2024-13-45")
	assert.Nil(t, invalid.Value)
}

func TestParseGender(t *testing.T) {
	tests := map[string]model.Gender{
		"M":       model.GenderMale,
		"male":    model.GenderMale,
		" MALE ":  model.GenderMale,
		"f":       model.GenderFemale,
		"Female":  model.GenderFemale,
		"Other":   model.GenderOther,
		"":        model.GenderOther,
		"unknown": model.GenderOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseGender(raw), "ParseGender(%q)", raw)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Unknown", Text(""))
	assert.Equal(t, "Savings", Text("Savings"))
	assert.Equal(t, " ", Text(" "), "non-empty input passes through verbatim")
}

func TestOutcomeDiagnostic(t *testing.T) {
	_, ok := Ok(5).Diagnostic(0, model.ColAge)
	assert.False(t, ok)

	d, ok := Defaulted(0, "abc", "not an integer").Diagnostic(2, model.ColAge)
	require.True(t, ok)
	assert.Equal(t, 2, d.Index)
	assert.Equal(t, model.ColAge, d.Column)
	assert.Equal(t, `record 3: Age "abc": not an integer`, d.String())
}
