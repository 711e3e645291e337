// Package report renders pipeline results for people (styled terminal text)
// and for machines (JSON).
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/analytics"
	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/pipeline"
)

// Options controls how much of each section is kept.
type Options struct {
	TopCustomers    int
	SampleErrors    int
	SampleAnomalies int
	Currency        string
}

// DefaultOptions keeps the top 10 customers, 5 errors and 5 anomalies.
func DefaultOptions() Options {
	return Options{TopCustomers: 10, SampleErrors: 5, SampleAnomalies: 5, Currency: "KES"}
}

// Report is the rendered view of one pipeline run.
type Report struct {
	RunID        string                   `json:"run_id"`
	GeneratedAt  time.Time                `json:"generated_at"`
	Currency     string                   `json:"currency"`
	Records      int                      `json:"records"`
	Valid        int                      `json:"valid"`
	Invalid      int                      `json:"invalid"`
	Diagnostics  int                      `json:"diagnostics"`
	KPI          analytics.KPI            `json:"kpi"`
	Branches     []analytics.BranchTotal  `json:"branches"`
	Trend        []analytics.MonthTotal   `json:"trend"`
	NewCustomers []analytics.MonthCount   `json:"new_customers"`
	TopCustomers []CustomerRow            `json:"top_customers"`
	Anomalies    []AnomalyRow             `json:"anomalies"`
	Errors       []string                 `json:"errors"`
	Volume       model.MonthlyVolumeIndex `json:"monthly_volume"`
}

// CustomerRow is one line of the lifetime-value table.
type CustomerRow struct {
	Rank          int             `json:"rank"`
	CustomerID    int             `json:"customer_id"`
	TotalVolume   decimal.Decimal `json:"total_volume"`
	ActiveMonths  int             `json:"active_months"`
	ValuePerMonth decimal.Decimal `json:"value_per_month"`
	First         string          `json:"first_transaction"`
	Last          string          `json:"last_transaction"`
}

// AnomalyRow is one flagged transaction.
type AnomalyRow struct {
	CustomerID int               `json:"customer_id"`
	Date       string            `json:"date"`
	Branch     string            `json:"branch"`
	Amount     decimal.Decimal   `json:"amount"`
	Type       model.AnomalyType `json:"type"`
	Reason     string            `json:"reason"`
}

// Build assembles a Report from a pipeline result. Top customers, anomalies
// and errors are truncated to the sizes in opts; a negative size keeps all.
// List fields are never nil so they encode as JSON arrays.
func Build(res *pipeline.Result, opts Options, now time.Time) *Report {
	r := &Report{
		RunID:        res.RunID,
		GeneratedAt:  now,
		Currency:     opts.Currency,
		Records:      len(res.Cleaned),
		Valid:        len(res.Validation.ValidTransactions),
		Invalid:      res.Validation.InvalidRecordCount,
		Diagnostics:  len(res.Diagnostics),
		KPI:          analytics.KPIs(res.MonthlyVolume, res.Anomalies, res.CustomerLTV),
		Branches:     analytics.BranchTotals(res.MonthlyVolume),
		Trend:        analytics.MonthlyTrend(res.MonthlyVolume),
		NewCustomers: analytics.NewCustomersByMonth(res.CustomerLTV),
		TopCustomers: []CustomerRow{},
		Anomalies:    []AnomalyRow{},
		Errors:       append([]string{}, head(res.Validation.ErrorLog, opts.SampleErrors)...),
		Volume:       res.MonthlyVolume,
	}
	if r.Volume == nil {
		r.Volume = model.MonthlyVolumeIndex{}
	}

	for i, l := range head(res.CustomerLTV, opts.TopCustomers) {
		r.TopCustomers = append(r.TopCustomers, CustomerRow{
			Rank:          i + 1,
			CustomerID:    l.CustomerID,
			TotalVolume:   l.TotalVolume,
			ActiveMonths:  l.ActiveMonths,
			ValuePerMonth: l.ValuePerMonth.Round(2),
			First:         formatDate(l.FirstTransactionDate),
			Last:          formatDate(l.LastTransactionDate),
		})
	}

	for _, a := range head(res.Anomalies, opts.SampleAnomalies) {
		r.Anomalies = append(r.Anomalies, AnomalyRow{
			CustomerID: a.Transaction.CustomerID,
			Date:       formatDate(a.Transaction.TransactionDate),
			Branch:     a.Transaction.BranchCode,
			Amount:     a.Transaction.TransactionAmount,
			Type:       a.Type,
			Reason:     a.Reason,
		})
	}
	return r
}

func head[T any](xs []T, n int) []T {
	if n < 0 || n >= len(xs) {
		return xs
	}
	return xs[:n]
}
