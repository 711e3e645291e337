package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nexus-dev/nexus/internal/eda"
)

// FormatProfile renders a column profile.
func (f *TerminalFormatter) FormatProfile(p eda.Profile) string {
	var b strings.Builder
	b.WriteString(f.styles.Title.Render("Column Profile"))
	b.WriteString("\n")
	b.WriteString(f.styles.Subtitle.Render(fmt.Sprintf("%d rows, %d columns", p.Rows, len(p.Columns))))
	b.WriteString("\n")

	missing := f.table("Column", "Missing")
	for _, col := range p.Columns {
		n := p.Missing[col]
		cell := strconv.Itoa(n)
		if n > 0 {
			cell = f.styles.Warning.Render(cell)
		}
		missing.Row(col, cell)
	}
	b.WriteString(f.styles.Section.Render("Missing values") + "\n" + missing.String() + "\n")

	if len(p.Numeric) > 0 {
		t := f.table("Column", "Count", "Min", "Max", "Mean", "Unique", "Negative")
		for _, s := range p.Numeric {
			t.Row(s.Column,
				strconv.Itoa(s.Count),
				strconv.FormatFloat(s.Min, 'f', -1, 64),
				strconv.FormatFloat(s.Max, 'f', -1, 64),
				strconv.FormatFloat(s.Mean, 'f', 2, 64),
				strconv.Itoa(s.Unique),
				strconv.Itoa(s.Negatives),
			)
		}
		b.WriteString(f.styles.Section.Render("Numeric columns") + "\n" + t.String() + "\n")
	}

	if len(p.Categorical) > 0 {
		t := f.table("Column", "Distinct", "Most frequent")
		for _, c := range p.Categorical {
			top := make([]string, 0, len(c.Top))
			for _, v := range c.Top {
				label := v.Value
				if label == "" {
					label = "(empty)"
				}
				top = append(top, fmt.Sprintf("%s (%d)", label, v.Count))
			}
			t.Row(c.Column, strconv.Itoa(c.Distinct), strings.Join(top, ", "))
		}
		b.WriteString(f.styles.Section.Render("Categorical columns") + "\n" + t.String() + "\n")
	}

	if len(p.Dates) > 0 {
		t := f.table("Column", "Count", "Earliest", "Latest")
		for _, d := range p.Dates {
			t.Row(d.Column, strconv.Itoa(d.Count), d.Earliest.Format("Mon Jan 2 2006"), d.Latest.Format("Mon Jan 2 2006"))
		}
		b.WriteString(f.styles.Section.Render("Date columns") + "\n" + t.String() + "\n")
	}

	if len(p.Correlations) > 0 {
		t := f.table("Columns", "r")
		for _, c := range p.Correlations {
			t.Row(c.A+" vs "+c.B, strconv.FormatFloat(c.R, 'f', 2, 64))
		}
		b.WriteString(f.styles.Section.Render("Correlations") + "\n" + t.String() + "\n")
	}
	return b.String()
}
