// Package analytics computes the dashboard aggregates over validated
// transactions: monthly branch volume, anomalies and customer lifetime value.
// Every function is read-only over its input.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/period"
)

// MonthlyVolumeByBranch sums transaction amounts per branch per month.
// Records without a branch code or a date are skipped.
func MonthlyVolumeByBranch(txns []model.CleanedTransaction) model.MonthlyVolumeIndex {
	idx := make(model.MonthlyVolumeIndex)
	for _, t := range txns {
		if t.BranchCode == "" || !t.HasDate() {
			continue
		}
		months, ok := idx[t.BranchCode]
		if !ok {
			months = make(map[string]decimal.Decimal)
			idx[t.BranchCode] = months
		}
		key := period.MonthKey(*t.TransactionDate)
		months[key] = months[key].Add(t.TransactionAmount)
	}
	return idx
}
