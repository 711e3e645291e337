package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexus-dev/nexus/internal/eda"
	"github.com/nexus-dev/nexus/internal/logger"
	"github.com/nexus-dev/nexus/internal/report"
)

func newProfileCommand() *cobra.Command {
	var format string
	var asJSON bool
	var topN int

	cmd := &cobra.Command{
		Use:   "profile <file|dir>...",
		Short: "Summarize raw columns before cleaning",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadRecords(args, loadOptions{format: format}, logger.FromContext(cmd.Context()))
			if err != nil {
				return err
			}

			opts := eda.DefaultOptions()
			opts.TopN = topN
			p := eda.Run(raw, opts)

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), p)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), report.NewTerminalFormatter().FormatProfile(p))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", formatUsage())
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the profile as JSON")
	cmd.Flags().IntVar(&topN, "top", 5, "most frequent values shown per categorical column")

	return cmd
}
