package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexus-dev/nexus/internal/report"
)

func newValidateCommand(a *app) *cobra.Command {
	var flags runFlags
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <file|dir>...",
		Short: "Report which records fail the consistency rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := flags.execute(cmd, a, args)
			if err != nil {
				return err
			}

			r := report.Build(res, a.reportOptions(), time.Now())
			if flags.json {
				err = report.WriteJSON(cmd.OutOrStdout(), validationSummary{
					RunID:   r.RunID,
					Records: r.Records,
					Valid:   r.Valid,
					Invalid: r.Invalid,
					Errors:  res.Validation.ErrorLog,
				})
			} else {
				_, err = fmt.Fprint(cmd.OutOrStdout(), report.NewTerminalFormatter().FormatValidation(r))
			}
			if err != nil {
				return err
			}

			if strict && r.Invalid > 0 {
				return fmt.Errorf("%d of %d records failed validation", r.Invalid, r.Records)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any record is rejected")

	return cmd
}

// validationSummary is the JSON output of validate; it lists every error.
type validationSummary struct {
	RunID   string   `json:"run_id"`
	Records int      `json:"records"`
	Valid   int      `json:"valid"`
	Invalid int      `json:"invalid"`
	Errors  []string `json:"errors"`
}
