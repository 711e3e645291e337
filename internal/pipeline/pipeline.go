// Package pipeline runs the normalizer, validator and aggregation engine over
// one batch of raw records.
package pipeline

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nexus-dev/nexus/internal/analytics"
	"github.com/nexus-dev/nexus/internal/diaglog"
	"github.com/nexus-dev/nexus/internal/model"
	"github.com/nexus-dev/nexus/internal/normalize"
	"github.com/nexus-dev/nexus/internal/validate"
)

// ErrNoRecords is returned when the input holds no data rows.
var ErrNoRecords = errors.New("no records to process")

// Options holds the thresholds for one run.
type Options struct {
	Rules   validate.Rules
	Anomaly analytics.AnomalyOptions
}

// DefaultOptions returns the stock validation rules and anomaly thresholds.
func DefaultOptions() Options {
	return Options{
		Rules:   validate.DefaultRules(),
		Anomaly: analytics.DefaultAnomalyOptions(),
	}
}

// Result is everything one run produces.
type Result struct {
	RunID         string
	Cleaned       []model.CleanedTransaction
	Diagnostics   []normalize.Diagnostic
	Validation    validate.Result
	MonthlyVolume model.MonthlyVolumeIndex
	Anomalies     []model.Anomaly
	CustomerLTV   []model.CustomerLTV
}

// Run normalizes raw, validates the cleaned records and aggregates the valid
// ones. Bad fields and bad records are reported in the result, never as an
// error.
func Run(raw []model.RawRecord, opts Options, log zerolog.Logger) (*Result, error) {
	if len(raw) == 0 {
		return nil, ErrNoRecords
	}

	res := &Result{RunID: uuid.NewString()}
	log = log.With().Str("run_id", res.RunID).Logger()

	res.Cleaned, res.Diagnostics = normalize.Records(raw)
	for _, d := range res.Diagnostics {
		log.Warn().
			Int("record", d.Index+1).
			Str("column", d.Column).
			Str("raw", d.Raw).
			Msg(d.Message)
	}
	log.Info().
		Int("records", len(res.Cleaned)).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("normalized records")

	res.Validation = validate.Transactions(res.Cleaned, opts.Rules)
	if res.Validation.InvalidRecordCount > 0 {
		log.Warn().
			Int("invalid", res.Validation.InvalidRecordCount).
			Int("valid", len(res.Validation.ValidTransactions)).
			Msg("rejected records failing validation")
	}
	for _, rej := range res.Validation.Rejections {
		log.Debug().
			Int("record", rej.Index+1).
			Stringer("rule", rej.Rule).
			Msg(rej.Error())
	}

	valid := res.Validation.ValidTransactions
	res.MonthlyVolume = analytics.MonthlyVolumeByBranch(valid)
	res.Anomalies = analytics.DetectAnomalies(valid, opts.Anomaly)
	for _, a := range res.Anomalies {
		log.Debug().Str("type", string(a.Type)).Msg(a.Reason)
	}
	res.CustomerLTV = analytics.CustomerLTV(valid)

	log.Info().
		Int("branches", len(res.MonthlyVolume)).
		Int("anomalies", len(res.Anomalies)).
		Int("customers", len(res.CustomerLTV)).
		Msg("aggregated valid records")

	return res, nil
}

// DiagnosticEntries converts normalization diagnostics and validation
// rejections into diagnostics log rows stamped with now.
func (r *Result) DiagnosticEntries(now time.Time) []diaglog.Entry {
	entries := make([]diaglog.Entry, 0, len(r.Diagnostics)+len(r.Validation.Rejections))
	for _, d := range r.Diagnostics {
		e := diaglog.Entry{
			Timestamp: now,
			RunID:     r.RunID,
			Stage:     diaglog.StageNormalize,
			Index:     d.Index,
			Rule:      d.Column,
			Message:   d.String(),
		}
		if d.Index < len(r.Cleaned) {
			e.CustomerID = r.Cleaned[d.Index].CustomerID
		}
		entries = append(entries, e)
	}
	for _, rej := range r.Validation.Rejections {
		entries = append(entries, diaglog.Entry{
			Timestamp:  now,
			RunID:      r.RunID,
			Stage:      diaglog.StageValidate,
			Index:      rej.Index,
			CustomerID: rej.CustomerID,
			Rule:       rej.Rule.String(),
			Message:    rej.Description,
		})
	}
	return entries
}
