package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/period"
)

const daysPerMonth = 30.44

type ltvAccumulator struct {
	total       decimal.Decimal
	first, last *time.Time
}

// CustomerLTV computes lifetime value per customer, sorted by value per
// month, highest first. Customers with equal value keep first-seen order.
// Records without a date count toward the total but not the tenure.
func CustomerLTV(txns []model.CleanedTransaction) []model.CustomerLTV {
	acc := make(map[int]*ltvAccumulator)
	var order []int
	for _, t := range txns {
		a, ok := acc[t.CustomerID]
		if !ok {
			a = &ltvAccumulator{}
			acc[t.CustomerID] = a
			order = append(order, t.CustomerID)
		}
		a.total = a.total.Add(t.TransactionAmount)
		if d := t.TransactionDate; d != nil {
			if a.first == nil || d.Before(*a.first) {
				a.first = d
			}
			if a.last == nil || d.After(*a.last) {
				a.last = d
			}
		}
	}

	out := make([]model.CustomerLTV, 0, len(order))
	for _, id := range order {
		a := acc[id]
		months := ActiveMonths(a.first, a.last)
		perMonth := a.total
		if months > 0 {
			perMonth = a.total.Div(decimal.NewFromInt(int64(months)))
		}
		out = append(out, model.CustomerLTV{
			CustomerID:           id,
			TotalVolume:          a.total,
			ActiveMonths:         months,
			ValuePerMonth:        perMonth,
			FirstTransactionDate: a.first,
			LastTransactionDate:  a.last,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValuePerMonth.GreaterThan(out[j].ValuePerMonth)
	})
	return out
}

// ActiveMonths returns the customer's tenure in 30.44-day months, rounded
// half up, plus one for the starting month. It is 0 without both dates.
func ActiveMonths(first, last *time.Time) int {
	if first == nil || last == nil {
		return 0
	}
	days := math.Abs(period.DaysBetween(*first, *last))
	return int(math.Floor(days/daysPerMonth+0.5)) + 1
}
