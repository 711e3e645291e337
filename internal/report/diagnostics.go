package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nexus-dev/nexus/internal/diaglog"
)

// FormatDiagnostics renders diagnostics log entries as a table.
func (f *TerminalFormatter) FormatDiagnostics(entries []diaglog.Entry) string {
	title := f.styles.Title.Render("Diagnostics")
	if len(entries) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No diagnostics recorded.") + "\n"
	}

	runs := make(map[string]struct{})
	t := f.table("Time", "Run", "Stage", "Record", "Customer", "Rule", "Message")
	for _, e := range entries {
		runs[e.RunID] = struct{}{}
		customer := ""
		if e.CustomerID != 0 {
			customer = strconv.Itoa(e.CustomerID)
		}
		t.Row(
			e.Timestamp.Format(time.DateTime),
			shortRunID(e.RunID),
			string(e.Stage),
			strconv.Itoa(e.Index),
			customer,
			e.Rule,
			e.Message,
		)
	}
	sub := f.styles.Subtitle.Render(fmt.Sprintf("%d entries from %d runs", len(entries), len(runs)))
	return title + "\n" + sub + "\n" + t.String() + "\n"
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
