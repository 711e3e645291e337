package analytics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
)

// AnomalyOptions configures DetectAnomalies.
type AnomalyOptions struct {
	// StdDevThreshold is how many standard deviations from the customer's
	// mean an amount must lie to be flagged.
	StdDevThreshold float64
	// HistoryThreshold is the transaction count at which a customer gets a
	// statistical profile. Below it the customer is treated as new.
	HistoryThreshold int
	// FirstTransactionThreshold flags any amount above it from a new customer.
	FirstTransactionThreshold decimal.Decimal
}

// DefaultAnomalyOptions returns 3 std devs, 3 transactions of history and a
// 150,000 new-customer threshold.
func DefaultAnomalyOptions() AnomalyOptions {
	return AnomalyOptions{
		StdDevThreshold:           3,
		HistoryThreshold:          3,
		FirstTransactionThreshold: decimal.NewFromInt(150_000),
	}
}

// Profile is a customer's amount statistics over their full history.
// StdDev is the population standard deviation.
type Profile struct {
	Mean   float64
	StdDev float64
	Count  int
}

// Profiles is the per-customer table built in the first detection pass.
// It is not modified after BuildProfiles returns.
type Profiles struct {
	stats  map[int]Profile
	counts map[int]int
}

// BuildProfiles counts every customer's transactions and computes a Profile
// for each customer with at least historyThreshold of them.
func BuildProfiles(txns []model.CleanedTransaction, historyThreshold int) Profiles {
	amounts := make(map[int][]float64)
	for _, t := range txns {
		amounts[t.CustomerID] = append(amounts[t.CustomerID], t.TransactionAmount.InexactFloat64())
	}

	p := Profiles{
		stats:  make(map[int]Profile),
		counts: make(map[int]int, len(amounts)),
	}
	for id, xs := range amounts {
		p.counts[id] = len(xs)
		if len(xs) < historyThreshold {
			continue
		}
		mean, std := meanStdDev(xs)
		p.stats[id] = Profile{Mean: mean, StdDev: std, Count: len(xs)}
	}
	return p
}

// Profile returns the statistics for a customer with enough history.
func (p Profiles) Profile(customerID int) (Profile, bool) {
	s, ok := p.stats[customerID]
	return s, ok
}

// Count returns how many transactions the customer has.
func (p Profiles) Count(customerID int) int {
	return p.counts[customerID]
}

// DetectAnomalies flags transactions that deviate from their customer's
// profile, and large early transactions from customers without one.
// Results follow input order.
func DetectAnomalies(txns []model.CleanedTransaction, opts AnomalyOptions) []model.Anomaly {
	profiles := BuildProfiles(txns, opts.HistoryThreshold)

	var anomalies []model.Anomaly
	for _, t := range txns {
		if a, ok := classify(t, profiles, opts); ok {
			anomalies = append(anomalies, a)
		}
	}
	return anomalies
}

func classify(t model.CleanedTransaction, profiles Profiles, opts AnomalyOptions) (model.Anomaly, bool) {
	amount := t.TransactionAmount.InexactFloat64()

	if p, ok := profiles.Profile(t.CustomerID); ok && p.StdDev > 0 {
		dev := (amount - p.Mean) / p.StdDev
		if math.Abs(dev) <= opts.StdDevThreshold {
			return model.Anomaly{}, false
		}
		typ, direction := model.AnomalyHighValue, "ABOVE"
		if dev < 0 {
			typ, direction = model.AnomalyLowValue, "BELOW"
		}
		return model.Anomaly{
			Transaction: t,
			Type:        typ,
			Reason: fmt.Sprintf("customer %d: transaction of %.2f is %.1f std devs %s their average of %.2f",
				t.CustomerID, amount, math.Abs(dev), direction, p.Mean),
		}, true
	}

	if profiles.Count(t.CustomerID) < opts.HistoryThreshold && t.TransactionAmount.GreaterThan(opts.FirstTransactionThreshold) {
		return model.Anomaly{
			Transaction: t,
			Type:        model.AnomalyNewCustomerHighValue,
			Reason: fmt.Sprintf("customer %d (new): early transaction of %.2f exceeds global threshold of %.2f",
				t.CustomerID, amount, opts.FirstTransactionThreshold.InexactFloat64()),
		}, true
	}

	return model.Anomaly{}, false
}

func meanStdDev(xs []float64) (mean, std float64) {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean = sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}
