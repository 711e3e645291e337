package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/period"
)

// BranchTotal is one row of the branch leaderboard.
type BranchTotal struct {
	Branch string          `json:"branch"`
	Volume decimal.Decimal `json:"volume"`
}

// MonthTotal is the volume across all branches for one month.
type MonthTotal struct {
	Month  string          `json:"month"`
	Volume decimal.Decimal `json:"volume"`
}

// MonthCount counts customers by month.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// KPI holds the headline numbers.
type KPI struct {
	TotalVolume  decimal.Decimal `json:"total_volume"`
	AnomalyCount int             `json:"anomaly_count"`
	Customers    int             `json:"customers"`
}

// BranchTotals sums each branch over all months, highest volume first.
func BranchTotals(idx model.MonthlyVolumeIndex) []BranchTotal {
	out := make([]BranchTotal, 0, len(idx))
	for branch, months := range idx {
		total := decimal.Zero
		for _, v := range months {
			total = total.Add(v)
		}
		out = append(out, BranchTotal{Branch: branch, Volume: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Volume.Equal(out[j].Volume) {
			return out[i].Volume.GreaterThan(out[j].Volume)
		}
		return out[i].Branch < out[j].Branch
	})
	return out
}

// MonthlyTrend sums every branch per month, in chronological order.
func MonthlyTrend(idx model.MonthlyVolumeIndex) []MonthTotal {
	totals := make(map[string]decimal.Decimal)
	for _, months := range idx {
		for month, v := range months {
			totals[month] = totals[month].Add(v)
		}
	}

	out := make([]MonthTotal, 0, len(totals))
	for month, v := range totals {
		out = append(out, MonthTotal{Month: month, Volume: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// NewCustomersByMonth counts customers by the month of their first
// transaction, in chronological order. Customers without dates are omitted.
func NewCustomersByMonth(ltvs []model.CustomerLTV) []MonthCount {
	counts := make(map[string]int)
	for _, l := range ltvs {
		if l.FirstTransactionDate == nil {
			continue
		}
		counts[period.MonthKey(*l.FirstTransactionDate)]++
	}

	out := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// KPIs returns the headline totals for a run.
func KPIs(idx model.MonthlyVolumeIndex, anomalies []model.Anomaly, ltvs []model.CustomerLTV) KPI {
	return KPI{
		TotalVolume:  idx.Total(),
		AnomalyCount: len(anomalies),
		Customers:    len(ltvs),
	}
}
