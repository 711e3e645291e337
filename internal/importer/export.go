package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nexus-dev/nexus/internal/model"
)

const exportDateFormat = "2006-01-02"

// MarshalTransaction converts a cleaned transaction to a row in model.Columns order.
func MarshalTransaction(t model.CleanedTransaction) []string {
	return []string{
		strconv.Itoa(t.CustomerID),
		formatDate(t.TransactionDate),
		t.TransactionType,
		t.TransactionAmount.String(),
		t.AccountBalance.String(),
		strconv.Itoa(t.CustomerAge),
		string(t.CustomerGender),
		t.AccountType,
		t.BranchCode,
		formatDate(t.AccountOpeningDate),
		t.BalanceAfterTransaction.String(),
	}
}

// RecordOf returns the raw-equivalent record of a cleaned transaction.
func RecordOf(t model.CleanedTransaction) model.RawRecord {
	row := MarshalTransaction(t)
	raw := make(model.RawRecord, len(row))
	for i, col := range model.Columns {
		raw[col] = row[i]
	}
	return raw
}

// WriteTransactions writes cleaned transactions as CSV with the source header,
// so the output can be fed back through the loader.
func WriteTransactions(w io.Writer, txns []model.CleanedTransaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(exportDateFormat)
}
