package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexus-dev/nexus/internal/diaglog"
	"github.com/nexus-dev/nexus/internal/report"
)

func newDiagnosticsCommand() *cobra.Command {
	var runID string
	var stage string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "diagnostics <log.csv>",
		Short: "Show entries from a diagnostics log written by analyze or validate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if stage != "" && stage != string(diaglog.StageNormalize) && stage != string(diaglog.StageValidate) {
				return fmt.Errorf("unknown stage %q (want %s or %s)", stage, diaglog.StageNormalize, diaglog.StageValidate)
			}

			entries, err := diaglog.Read(args[0])
			if err != nil {
				return err
			}

			filtered := make([]diaglog.Entry, 0, len(entries))
			for _, e := range entries {
				if runID != "" && e.RunID != runID {
					continue
				}
				if stage != "" && string(e.Stage) != stage {
					continue
				}
				filtered = append(filtered, e)
			}

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), filtered)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report.NewTerminalFormatter().FormatDiagnostics(filtered))
			return err
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "only show entries from this run ID")
	cmd.Flags().StringVar(&stage, "stage", "", "only show entries from this stage: normalize or validate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the entries as JSON")

	return cmd
}
