package validate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rule identifies a consistency check, in evaluation order.
type Rule int

const (
	RuleMissingDate Rule = iota + 1
	RuleAgeRange
	RuleNonPositiveAmount
	RuleBalanceMismatch
	RuleUnknownType
	RuleAgeInconsistent
)

var ruleNames = map[Rule]string{
	RuleMissingDate:       "missing-date",
	RuleAgeRange:          "age-range",
	RuleNonPositiveAmount: "non-positive-amount",
	RuleBalanceMismatch:   "balance-mismatch",
	RuleUnknownType:       "unknown-type",
	RuleAgeInconsistent:   "age-inconsistent",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// Rules holds the thresholds the validator checks against.
type Rules struct {
	MinAge      int
	MaxAge      int
	Tolerance   decimal.Decimal // inclusive balance tolerance
	MaxAgeDrift int             // allowed years between stated and expected age
}

// DefaultRules returns ages 18-120, a 0.01 balance tolerance and one year of age drift.
func DefaultRules() Rules {
	return Rules{
		MinAge:      18,
		MaxAge:      120,
		Tolerance:   decimal.New(1, -2),
		MaxAgeDrift: 1,
	}
}

// Rejection describes why a record was excluded.
type Rejection struct {
	Index       int // position of the record in the input
	CustomerID  int
	Rule        Rule
	Description string
}

func (r Rejection) Error() string {
	return fmt.Sprintf("invalid record (customer %d): %s", r.CustomerID, r.Description)
}
