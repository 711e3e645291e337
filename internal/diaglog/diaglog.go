// Package diaglog persists per-record pipeline diagnostics as CSV.
package diaglog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Stage names the pipeline step that produced an entry.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageValidate  Stage = "validate"
)

// Entry is one row in the diagnostics log.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id"`
	Stage      Stage     `json:"stage"`
	Index      int       `json:"index"`       // record position in the input
	CustomerID int       `json:"customer_id"` // 0 when unknown
	Rule       string    `json:"rule"`        // column name for normalize, rule name for validate
	Message    string    `json:"message"`
}

// Header is the CSV header for the diagnostics log.
const Header = "timestamp,run_id,stage,index,customer_id,rule,message"

const (
	numFields     = 7
	colTimestamp  = 0
	colRunID      = 1
	colStage      = 2
	colIndex      = 3
	colCustomerID = 4
	colRule       = 5
	colMessage    = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colStage] = string(e.Stage)
	row[colIndex] = strconv.Itoa(e.Index)
	row[colCustomerID] = strconv.Itoa(e.CustomerID)
	row[colRule] = e.Rule
	row[colMessage] = e.Message
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	index, err := strconv.Atoi(record[colIndex])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing index %q: %w", record[colIndex], err)
	}
	customerID, err := strconv.Atoi(record[colCustomerID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing customer id %q: %w", record[colCustomerID], err)
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Stage:      Stage(record[colStage]),
		Index:      index,
		CustomerID: customerID,
		Rule:       record[colRule],
		Message:    record[colMessage],
	}, nil
}

// Append writes entries to path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating diagnostics dir: %w", err)
		}
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from path. A missing file yields no entries.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening diagnostics log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading diagnostics CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
