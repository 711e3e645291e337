package normalize

import "fmt"

// Outcome is the result of coercing one raw field: the parsed value, or a
// default together with the text that could not be parsed.
type Outcome[T any] struct {
	Value     T
	Raw       string
	Defaulted bool
	Reason    string
}

// Ok wraps a successfully parsed value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Defaulted wraps a fallback value for raw text that failed to parse.
func Defaulted[T any](v T, raw, reason string) Outcome[T] {
	return Outcome[T]{Value: v, Raw: raw, Defaulted: true, Reason: reason}
}

// Diagnostic describes one degraded field.
type Diagnostic struct {
	Index   int // position of the record in the input
	Column  string
	Raw     string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d: %s %q: %s", d.Index+1, d.Column, d.Raw, d.Message)
}

// Diagnostic returns the diagnostic for a defaulted outcome.
func (o Outcome[T]) Diagnostic(index int, column string) (Diagnostic, bool) {
	if !o.Defaulted {
		return Diagnostic{}, false
	}
	return Diagnostic{Index: index, Column: column, Raw: o.Raw, Message: o.Reason}, true
}
