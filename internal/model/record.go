package model

// Column names of a raw transaction row, as they appear in the source header.
const (
	ColCustomerID        = "Customer ID"
	ColTransactionDate   = "Transaction Date"
	ColTransactionType   = "Transaction Type"
	ColTransactionAmount = "Transaction Amount"
	ColAccountBalance    = "Account Balance"
	ColAge               = "Age"
	ColGender            = "Gender"
	ColAccountType       = "Account Type"
	ColBranchID          = "Branch ID"
	ColAccountOpening    = "Date Of Account Opening"
	ColBalanceAfter      = "Account Balance After Transaction"
)

// Columns lists every raw column in export order.
var Columns = []string{
	ColCustomerID,
	ColTransactionDate,
	ColTransactionType,
	ColTransactionAmount,
	ColAccountBalance,
	ColAge,
	ColGender,
	ColAccountType,
	ColBranchID,
	ColAccountOpening,
	ColBalanceAfter,
}

// RawRecord is one source row keyed by column name. Missing keys read as "".
type RawRecord map[string]string

// Get returns the raw text for a column.
func (r RawRecord) Get(col string) string {
	return r[col]
}
