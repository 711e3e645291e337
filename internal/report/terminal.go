package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nexus-dev/nexus/internal/model"
)

// TerminalFormatter renders a Report as styled text.
type TerminalFormatter struct {
	styles *Styles
}

// NewTerminalFormatter creates a formatter with the default styles.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{styles: NewStyles()}
}

// Format renders the full dashboard report.
func (f *TerminalFormatter) Format(r *Report) string {
	sections := []string{
		f.header(r),
		f.kpis(r),
		f.branches(r),
		f.trend(r),
		f.customers(r),
		f.anomalies(r),
		f.validation(r),
	}
	return strings.Join(sections, "\n") + "\n"
}

// FormatValidation renders only the record counts and the error sample.
func (f *TerminalFormatter) FormatValidation(r *Report) string {
	return strings.Join([]string{f.header(r), f.validation(r)}, "\n") + "\n"
}

func (f *TerminalFormatter) header(r *Report) string {
	title := f.styles.Title.Render("Transaction Analytics Report")
	sub := f.styles.Subtitle.Render(fmt.Sprintf("Run %s  ·  %s", r.RunID, r.GeneratedAt.Format("Jan 2, 2006 15:04")))
	return title + "\n" + sub
}

func (f *TerminalFormatter) kpis(r *Report) string {
	boxes := []string{
		f.styles.Box.Render("Total volume\n" + f.styles.Success.Render(FormatCurrency(r.KPI.TotalVolume, r.Currency))),
		f.styles.Box.Render("Customers\n" + f.styles.Success.Render(strconv.Itoa(r.KPI.Customers))),
		f.styles.Box.Render("Anomalies\n" + f.anomalyCount(r.KPI.AnomalyCount)),
		f.styles.Box.Render(fmt.Sprintf("Records\n%d valid / %d total", r.Valid, r.Records)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (f *TerminalFormatter) anomalyCount(n int) string {
	if n == 0 {
		return f.styles.Success.Render("0")
	}
	return f.styles.Warning.Render(strconv.Itoa(n))
}

func (f *TerminalFormatter) branches(r *Report) string {
	title := f.styles.Section.Render("Branch performance")
	if len(r.Branches) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No branch volume.")
	}
	t := f.table("Branch", "Volume", "Abbrev.")
	for _, b := range r.Branches {
		t.Row(b.Branch, FormatCurrency(b.Volume, r.Currency), FormatLargeNumber(b.Volume))
	}
	return title + "\n" + t.String()
}

func (f *TerminalFormatter) trend(r *Report) string {
	title := f.styles.Section.Render("Monthly trend")
	if len(r.Trend) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No dated transactions.")
	}

	newByMonth := make(map[string]int, len(r.NewCustomers))
	for _, c := range r.NewCustomers {
		newByMonth[c.Month] = c.Count
	}

	t := f.table("Month", "", "Volume", "New customers")
	for _, m := range r.Trend {
		t.Row(m.Month, FormatMonth(m.Month), FormatLargeNumber(m.Volume), strconv.Itoa(newByMonth[m.Month]))
	}
	return title + "\n" + t.String()
}

func (f *TerminalFormatter) customers(r *Report) string {
	title := f.styles.Section.Render(fmt.Sprintf("Top customers by value per month (%d)", len(r.TopCustomers)))
	if len(r.TopCustomers) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No customers.")
	}
	t := f.table("#", "Customer", "Total", "Months", "Per month", "First", "Last")
	for _, c := range r.TopCustomers {
		t.Row(
			strconv.Itoa(c.Rank),
			strconv.Itoa(c.CustomerID),
			FormatCurrency(c.TotalVolume, r.Currency),
			strconv.Itoa(c.ActiveMonths),
			FormatCurrency(c.ValuePerMonth, r.Currency),
			c.First,
			c.Last,
		)
	}
	return title + "\n" + t.String()
}

func (f *TerminalFormatter) anomalies(r *Report) string {
	title := f.styles.Section.Render(fmt.Sprintf("Recent alerts (%d total)", r.KPI.AnomalyCount))
	if len(r.Anomalies) == 0 {
		return title + "\n" + f.styles.Subtle.Render("No anomalous transactions detected.")
	}
	lines := make([]string, 0, len(r.Anomalies))
	for _, a := range r.Anomalies {
		style := f.styles.Warning
		if a.Type == model.AnomalyHighValue || a.Type == model.AnomalyNewCustomerHighValue {
			style = f.styles.Error
		}
		lines = append(lines, "  "+style.Render("• "+a.Reason))
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *TerminalFormatter) validation(r *Report) string {
	title := f.styles.Section.Render("Validation")
	summary := fmt.Sprintf("%d of %d records valid, %d rejected, %d field diagnostics",
		r.Valid, r.Records, r.Invalid, r.Diagnostics)
	if r.Invalid == 0 {
		return title + "\n" + f.styles.Success.Render(summary)
	}

	lines := []string{f.styles.Warning.Render(summary)}
	for _, e := range r.Errors {
		lines = append(lines, "  "+f.styles.Subtle.Render(e))
	}
	if more := r.Invalid - len(r.Errors); more > 0 {
		lines = append(lines, "  "+f.styles.Subtle.Render(fmt.Sprintf("... and %d more", more)))
	}
	return title + "\n" + strings.Join(lines, "\n")
}

func (f *TerminalFormatter) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(f.styles.Subtle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return f.styles.Header
			}
			return f.styles.Cell
		})
}
