package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnomalyType tags why a transaction was flagged.
type AnomalyType string

const (
	AnomalyHighValue            AnomalyType = "high-value"
	AnomalyLowValue             AnomalyType = "low-value"
	AnomalyNewCustomerHighValue AnomalyType = "new-customer-high-value"
)

// Anomaly is a validated transaction flagged by the detector.
type Anomaly struct {
	Transaction CleanedTransaction
	Type        AnomalyType
	Reason      string
}

// CustomerLTV holds tenure-normalized lifetime value for one customer.
type CustomerLTV struct {
	CustomerID           int
	TotalVolume          decimal.Decimal
	ActiveMonths         int
	ValuePerMonth        decimal.Decimal
	FirstTransactionDate *time.Time
	LastTransactionDate  *time.Time
}

// MonthlyVolumeIndex maps branch code -> month key (YYYY-MM) -> summed amount.
type MonthlyVolumeIndex map[string]map[string]decimal.Decimal

// Total returns the sum of every bucket.
func (idx MonthlyVolumeIndex) Total() decimal.Decimal {
	total := decimal.Zero
	for _, months := range idx {
		for _, v := range months {
			total = total.Add(v)
		}
	}
	return total
}
