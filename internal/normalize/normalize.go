package normalize

import (
	"github.com/nexus-dev/nexus/internal/model"
)

// Records normalizes every raw row, in order. It never fails: fields that
// cannot be parsed fall back to their defaults and are reported as diagnostics.
func Records(raw []model.RawRecord) ([]model.CleanedTransaction, []Diagnostic) {
	txns := make([]model.CleanedTransaction, 0, len(raw))
	var diags []Diagnostic
	for i, r := range raw {
		txn, d := Record(i, r)
		txns = append(txns, txn)
		diags = append(diags, d...)
	}
	return txns, diags
}

// Record normalizes a single raw row at position index.
func Record(index int, r model.RawRecord) (model.CleanedTransaction, []Diagnostic) {
	var diags []Diagnostic
	note := func(d Diagnostic, ok bool) {
		if ok {
			diags = append(diags, d)
		}
	}

	customerID := ParseCustomerID(r.Get(model.ColCustomerID))
	note(customerID.Diagnostic(index, model.ColCustomerID))
	age := ParseInt(r.Get(model.ColAge))
	note(age.Diagnostic(index, model.ColAge))

	txDate := ParseDate(r.Get(model.ColTransactionDate))
	note(txDate.Diagnostic(index, model.ColTransactionDate))
	openDate := ParseDate(r.Get(model.ColAccountOpening))
	note(openDate.Diagnostic(index, model.ColAccountOpening))

	amount := ParseAmount(r.Get(model.ColTransactionAmount))
	note(amount.Diagnostic(index, model.ColTransactionAmount))
	balance := ParseAmount(r.Get(model.ColAccountBalance))
	note(balance.Diagnostic(index, model.ColAccountBalance))
	after := ParseAmount(r.Get(model.ColBalanceAfter))
	note(after.Diagnostic(index, model.ColBalanceAfter))

	return model.CleanedTransaction{
		CustomerID:              customerID.Value,
		TransactionDate:         txDate.Value,
		TransactionType:         Text(r.Get(model.ColTransactionType)),
		TransactionAmount:       amount.Value,
		AccountBalance:          balance.Value,
		CustomerAge:             age.Value,
		CustomerGender:          ParseGender(r.Get(model.ColGender)),
		AccountType:             Text(r.Get(model.ColAccountType)),
		BranchCode:              Text(r.Get(model.ColBranchID)),
		AccountOpeningDate:      openDate.Value,
		BalanceAfterTransaction: after.Value,
	}, diags
}
