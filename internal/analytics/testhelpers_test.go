package analytics

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nexus-dev/nexus/internal/importer"
	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/normalize"
	"github.com/nexus-dev/nexus/internal/validate"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func txn(customer int, amount string, on *time.Time, branch string) model.CleanedTransaction {
	return model.CleanedTransaction{
		CustomerID:        customer,
		TransactionDate:   on,
		TransactionType:   "Deposit",
		TransactionAmount: dec(amount),
		BranchCode:        branch,
	}
}

// validTestdata returns the validated records of the shared fixture.
func validTestdata(t *testing.T) []model.CleanedTransaction {
	t.Helper()
	f, err := os.Open("../../testdata/transactions.csv")
	require.NoError(t, err)
	defer f.Close()

	raw, err := importer.NewCSVParser().Parse(f)
	require.NoError(t, err)
	cleaned, _ := normalize.Records(raw)
	return validate.Transactions(cleaned, validate.DefaultRules()).ValidTransactions
}
