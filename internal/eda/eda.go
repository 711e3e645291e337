// Package eda profiles raw transaction columns before any cleaning: missing
// values, numeric ranges, categorical frequencies and date spans.
package eda

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/normalize"
)

// Options selects which columns get which summary.
type Options struct {
	Numeric     []string
	Categorical []string
	Dates       []string
	Correlate   []string
	TopN        int
}

// DefaultOptions profiles the standard transaction columns.
func DefaultOptions() Options {
	return Options{
		Numeric: []string{
			model.ColAge,
			model.ColAccountBalance,
			model.ColTransactionAmount,
			model.ColBalanceAfter,
		},
		Categorical: []string{
			model.ColGender,
			model.ColAccountType,
			model.ColTransactionType,
			model.ColBranchID,
		},
		Dates: []string{
			model.ColTransactionDate,
			model.ColAccountOpening,
		},
		Correlate: []string{
			model.ColAge,
			model.ColAccountBalance,
			model.ColTransactionAmount,
		},
		TopN: 5,
	}
}

// Profile is the full column report for one input.
type Profile struct {
	Rows         int                  `json:"rows"`
	Columns      []string             `json:"columns"`
	Missing      map[string]int       `json:"missing"`
	Numeric      []NumericSummary     `json:"numeric"`
	Categorical  []CategoricalSummary `json:"categorical"`
	Dates        []DateSummary        `json:"dates"`
	Correlations []Correlation        `json:"correlations"`
}

// NumericSummary describes the parseable values of one column.
type NumericSummary struct {
	Column    string  `json:"column"`
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	Unique    int     `json:"unique"`
	Negatives int     `json:"negatives"`
}

// ValueCount is one categorical value and its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary holds the most frequent values of one column.
type CategoricalSummary struct {
	Column   string       `json:"column"`
	Distinct int          `json:"distinct"`
	Top      []ValueCount `json:"top"`
}

// DateSummary is the span of parseable dates in one column.
type DateSummary struct {
	Column   string    `json:"column"`
	Count    int       `json:"count"`
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// Correlation is the Pearson coefficient between two numeric columns over
// the rows where both parse.
type Correlation struct {
	A string  `json:"a"`
	B string  `json:"b"`
	R float64 `json:"r"`
}

// Run profiles raw according to opts.
func Run(raw []model.RawRecord, opts Options) Profile {
	p := Profile{
		Rows:    len(raw),
		Columns: columns(raw),
		Missing: make(map[string]int),
	}

	for _, r := range raw {
		for _, col := range p.Columns {
			if strings.TrimSpace(r.Get(col)) == "" {
				p.Missing[col]++
			}
		}
	}

	for _, col := range opts.Numeric {
		if s, ok := numericSummary(raw, col); ok {
			p.Numeric = append(p.Numeric, s)
		}
	}
	for _, col := range opts.Categorical {
		p.Categorical = append(p.Categorical, categoricalSummary(raw, col, opts.TopN))
	}
	for _, col := range opts.Dates {
		if s, ok := dateSummary(raw, col); ok {
			p.Dates = append(p.Dates, s)
		}
	}
	for i := 0; i < len(opts.Correlate); i++ {
		for j := i + 1; j < len(opts.Correlate); j++ {
			if c, ok := correlate(raw, opts.Correlate[i], opts.Correlate[j]); ok {
				p.Correlations = append(p.Correlations, c)
			}
		}
	}
	return p
}

// columns returns the standard columns followed by any extra header names,
// sorted.
func columns(raw []model.RawRecord) []string {
	seen := make(map[string]bool, len(model.Columns))
	cols := append([]string(nil), model.Columns...)
	for _, c := range cols {
		seen[c] = true
	}
	var extra []string
	for _, r := range raw {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

func number(raw string) (float64, bool) {
	o := normalize.ParseAmount(raw)
	if o.Defaulted {
		return 0, false
	}
	return o.Value.InexactFloat64(), true
}

func numericSummary(raw []model.RawRecord, col string) (NumericSummary, bool) {
	s := NumericSummary{Column: col, Min: math.Inf(1), Max: math.Inf(-1)}
	unique := make(map[string]bool)
	var sum float64
	for _, r := range raw {
		v, ok := number(r.Get(col))
		if !ok {
			continue
		}
		s.Count++
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		if v < 0 {
			s.Negatives++
		}
		unique[strings.TrimSpace(r.Get(col))] = true
	}
	if s.Count == 0 {
		return NumericSummary{}, false
	}
	s.Mean = sum / float64(s.Count)
	s.Unique = len(unique)
	return s, true
}

func categoricalSummary(raw []model.RawRecord, col string, topN int) CategoricalSummary {
	counts := make(map[string]int)
	for _, r := range raw {
		counts[strings.TrimSpace(r.Get(col))]++
	}

	values := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		values = append(values, ValueCount{Value: v, Count: n})
	}
	sort.Slice(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return values[i].Value < values[j].Value
	})
	if topN > 0 && len(values) > topN {
		values = values[:topN]
	}
	return CategoricalSummary{Column: col, Distinct: len(counts), Top: values}
}

func dateSummary(raw []model.RawRecord, col string) (DateSummary, bool) {
	s := DateSummary{Column: col}
	for _, r := range raw {
		d := normalize.ParseDate(r.Get(col)).Value
		if d == nil {
			continue
		}
		if s.Count == 0 || d.Before(s.Earliest) {
			s.Earliest = *d
		}
		if s.Count == 0 || d.After(s.Latest) {
			s.Latest = *d
		}
		s.Count++
	}
	return s, s.Count > 0
}

func correlate(raw []model.RawRecord, a, b string) (Correlation, bool) {
	var xs, ys []float64
	for _, r := range raw {
		x, okX := number(r.Get(a))
		y, okY := number(r.Get(b))
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return Correlation{}, false
	}

	n := float64(len(xs))
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= n
	my /= n

	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return Correlation{}, false
	}
	return Correlation{A: a, B: b, R: cov / math.Sqrt(vx*vy)}, true
}
