package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender is the normalized customer gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Unknown is the default for empty free-text fields.
const Unknown = "Unknown"

// CleanedTransaction is a normalized transaction row. Dates are date-only UTC;
// a nil date means the source value was empty or unparseable.
type CleanedTransaction struct {
	CustomerID              int // 0 = unparseable
	TransactionDate         *time.Time
	TransactionType         string
	TransactionAmount       decimal.Decimal
	AccountBalance          decimal.Decimal
	CustomerAge             int // 0 = unparseable
	CustomerGender          Gender
	AccountType             string
	BranchCode              string
	AccountOpeningDate      *time.Time
	BalanceAfterTransaction decimal.Decimal
}

// HasDate reports whether the transaction date is known.
func (t CleanedTransaction) HasDate() bool {
	return t.TransactionDate != nil
}
