package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes v (a Report, an eda.Profile or diagnostics entries) as
// indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
