package validate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/period"
)

const daysPerYear = 365.25

// ReferencePoint is a customer's age on their earliest-dated transaction.
type ReferencePoint struct {
	Age  int
	Date time.Time
}

// Result is the outcome of a validation run. ErrorLog holds one line per
// rejected record, in input order.
type Result struct {
	ValidTransactions  []model.CleanedTransaction
	InvalidRecordCount int
	ErrorLog           []string
	Rejections         []Rejection
}

// ReferencePoints returns, per customer, the (age, date) of the earliest dated
// transaction. Ties keep the first record seen.
func ReferencePoints(txns []model.CleanedTransaction) map[int]ReferencePoint {
	refs := make(map[int]ReferencePoint)
	for _, t := range txns {
		if t.TransactionDate == nil {
			continue
		}
		cur, ok := refs[t.CustomerID]
		if !ok || t.TransactionDate.Before(cur.Date) {
			refs[t.CustomerID] = ReferencePoint{Age: t.CustomerAge, Date: *t.TransactionDate}
		}
	}
	return refs
}

// Transactions filters txns against the consistency rules. Reference points
// are computed from the whole input before any record is checked.
func Transactions(txns []model.CleanedTransaction, rules Rules) Result {
	refs := ReferencePoints(txns)

	res := Result{ValidTransactions: make([]model.CleanedTransaction, 0, len(txns))}
	for i, t := range txns {
		ref, hasRef := refs[t.CustomerID]
		if rej, bad := check(i, t, ref, hasRef, rules); bad {
			res.Rejections = append(res.Rejections, rej)
			res.ErrorLog = append(res.ErrorLog, rej.Error())
			continue
		}
		res.ValidTransactions = append(res.ValidTransactions, t)
	}
	res.InvalidRecordCount = len(res.Rejections)
	return res
}

// check returns the first rule t violates.
func check(index int, t model.CleanedTransaction, ref ReferencePoint, hasRef bool, rules Rules) (Rejection, bool) {
	reject := func(rule Rule, format string, args ...any) (Rejection, bool) {
		return Rejection{
			Index:       index,
			CustomerID:  t.CustomerID,
			Rule:        rule,
			Description: fmt.Sprintf(format, args...),
		}, true
	}

	if t.TransactionDate == nil {
		return reject(RuleMissingDate, "missing or invalid transaction date")
	}

	if t.CustomerAge < rules.MinAge || t.CustomerAge > rules.MaxAge {
		return reject(RuleAgeRange, "age %d is outside the valid range (%d-%d)", t.CustomerAge, rules.MinAge, rules.MaxAge)
	}

	if !t.TransactionAmount.IsPositive() {
		return reject(RuleNonPositiveAmount, "transaction amount is not positive (%s)", t.TransactionAmount)
	}

	bal, amt, after := t.AccountBalance, t.TransactionAmount, t.BalanceAfterTransaction
	switch strings.ToLower(t.TransactionType) {
	case "deposit":
		want := bal.Add(amt)
		if !within(after, want, rules.Tolerance) {
			return reject(RuleBalanceMismatch, "balance after deposit (%s) does not match %s + %s = %s", after, bal, amt, want)
		}
	case "withdrawal":
		want := bal.Sub(amt)
		if !within(after, want, rules.Tolerance) {
			return reject(RuleBalanceMismatch, "balance after withdrawal (%s) does not match %s - %s = %s", after, bal, amt, want)
		}
	case "transfer":
		// Direction is not recorded, so either sign is accepted.
		if !within(after, bal.Add(amt), rules.Tolerance) && !within(after, bal.Sub(amt), rules.Tolerance) {
			return reject(RuleBalanceMismatch, "balance after transfer (%s) is not consistent with %s ± %s", after, bal, amt)
		}
	default:
		return reject(RuleUnknownType, "unknown transaction type %q", t.TransactionType)
	}

	if hasRef {
		expected := ExpectedAge(ref, *t.TransactionDate)
		if absInt(t.CustomerAge-expected) > rules.MaxAgeDrift {
			return reject(RuleAgeInconsistent, "inconsistent age: expected ~%d, found %d", expected, t.CustomerAge)
		}
	}

	return Rejection{}, false
}

// ExpectedAge projects the reference age forward by the whole years elapsed
// until on, using 365.25-day years.
func ExpectedAge(ref ReferencePoint, on time.Time) int {
	years := period.DaysBetween(ref.Date, on) / daysPerYear
	return ref.Age + int(math.Floor(years))
}

func within(got, want, tol decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(tol)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
