package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nexus-dev/nexus/internal/model"
)

// DelimitedParser reads header-mapped rows from delimited text.
type DelimitedParser struct {
	name  string
	comma rune
}

// NewCSVParser returns a comma-separated parser.
func NewCSVParser() *DelimitedParser {
	return &DelimitedParser{name: "csv", comma: ','}
}

// NewTSVParser returns a tab-separated parser.
func NewTSVParser() *DelimitedParser {
	return &DelimitedParser{name: "tsv", comma: '\t'}
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.name }

// Parse maps every data row onto the header. Blank rows are skipped and
// short rows leave their trailing columns empty. Header names are trimmed;
// cell values are kept verbatim.
func (p *DelimitedParser) Parse(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", p.name, err)
	}
	cols := headerColumns(header)

	var records []model.RawRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}

		raw := make(model.RawRecord, len(cols))
		for i, col := range cols {
			if col == "" {
				continue
			}
			if i < len(rec) {
				raw[col] = rec[i]
			} else {
				raw[col] = ""
			}
		}
		records = append(records, raw)
	}
	return records, nil
}

func headerColumns(header []string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.TrimSpace(h)
	}
	return cols
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
