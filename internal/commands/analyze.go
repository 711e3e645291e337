package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexus-dev/nexus/internal/diaglog"
	"github.com/nexus-dev/nexus/internal/importer"
	"github.com/nexus-dev/nexus/internal/logger"
	"github.com/nexus-dev/nexus/internal/pipeline"
	"github.com/nexus-dev/nexus/internal/report"
)

// runFlags are the input and threshold flags shared by analyze and validate.
type runFlags struct {
	format           string
	json             bool
	progress         bool
	diagnostics      string
	stdDevThreshold  float64
	historyThreshold int
	firstTxThreshold float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", formatUsage())
	cmd.Flags().BoolVar(&f.json, "json", false, "write the report as JSON")
	cmd.Flags().BoolVar(&f.progress, "progress", false, "show a progress bar while reading files")
	cmd.Flags().StringVar(&f.diagnostics, "diagnostics", "", "append field and record diagnostics to this CSV file")
	cmd.Flags().Float64Var(&f.stdDevThreshold, "std-dev-threshold", 0, "flag amounts this many std devs from the customer mean")
	cmd.Flags().IntVar(&f.historyThreshold, "history-threshold", 0, "transactions needed before a customer is profiled")
	cmd.Flags().Float64Var(&f.firstTxThreshold, "first-tx-threshold", 0, "flag new-customer amounts above this value")
}

// execute applies flag overrides to the config, loads the inputs and runs
// the pipeline.
func (f *runFlags) execute(cmd *cobra.Command, a *app, paths []string) (*pipeline.Result, error) {
	if cmd.Flags().Changed("std-dev-threshold") {
		a.cfg.Anomaly.StdDevThreshold = f.stdDevThreshold
	}
	if cmd.Flags().Changed("history-threshold") {
		a.cfg.Anomaly.HistoryThreshold = f.historyThreshold
	}
	if cmd.Flags().Changed("first-tx-threshold") {
		a.cfg.Anomaly.FirstTransactionThreshold = f.firstTxThreshold
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.FromContext(cmd.Context())

	opts := loadOptions{format: f.format}
	if f.progress {
		opts.progress = cmd.ErrOrStderr()
	}
	raw, err := loadRecords(paths, opts, log)
	if err != nil {
		return nil, err
	}

	res, err := pipeline.Run(raw, pipeline.Options{
		Rules:   a.cfg.Rules(),
		Anomaly: a.cfg.AnomalyOptions(),
	}, log)
	if err != nil {
		return nil, err
	}

	if f.diagnostics != "" {
		entries := res.DiagnosticEntries(time.Now().UTC())
		if err := diaglog.Append(f.diagnostics, entries); err != nil {
			return nil, fmt.Errorf("writing diagnostics: %w", err)
		}
		log.Info().Str("path", f.diagnostics).Int("entries", len(entries)).Msg("wrote diagnostics")
	}
	return res, nil
}

func (a *app) reportOptions() report.Options {
	return report.Options{
		TopCustomers:    a.cfg.Report.TopCustomers,
		SampleErrors:    a.cfg.Report.SampleErrors,
		SampleAnomalies: a.cfg.Report.SampleAnomalies,
		Currency:        a.cfg.Report.Currency,
	}
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var flags runFlags
	var top int
	var exportValid string

	cmd := &cobra.Command{
		Use:   "analyze <file|dir>...",
		Short: "Clean, validate and aggregate transaction files",
		Long: `Analyze reads one or more CSV/TSV transaction files (or directories of them),
normalizes every row, rejects records that fail the consistency rules, and
reports monthly branch volume, anomalous transactions and customer lifetime value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.execute(cmd, a, args)
			if err != nil {
				return err
			}

			if exportValid != "" {
				if err := exportTransactions(exportValid, res); err != nil {
					return err
				}
			}

			opts := a.reportOptions()
			if cmd.Flags().Changed("top") {
				opts.TopCustomers = top
			}
			r := report.Build(res, opts, time.Now())

			if flags.json {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report.NewTerminalFormatter().Format(r))
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&top, "top", 10, "number of customers in the lifetime value table")
	cmd.Flags().StringVar(&exportValid, "export-valid", "", "write validated records to this CSV file")

	return cmd
}

func exportTransactions(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := importer.WriteTransactions(f, res.Validation.ValidTransactions); err != nil {
		f.Close()
		return fmt.Errorf("exporting valid records: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}
	return nil
}
