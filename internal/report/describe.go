package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nao1215/jobreport/internal/model"
)

// describeRows lists the statistics of the describe table, top to bottom.
var describeRows = []string{"count", "null_count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// WriteDescribe writes the describe table of the numeric columns to w: one
// column per dataset column and one row per statistic. Columns without
// usable values show empty cells.
func WriteDescribe(w io.Writer, columns []model.ColumnSummary) error {
	if len(columns) == 0 {
		_, err := fmt.Fprintln(w, "no numeric columns")
		return err
	}

	headers := make([]string, 0, len(columns)+1)
	headers = append(headers, "")
	for _, c := range columns {
		headers = append(headers, c.Column)
	}

	rows := make([][]string, len(describeRows))
	for i, stat := range describeRows {
		row := make([]string, 0, len(columns)+1)
		row = append(row, stat)
		for _, c := range columns {
			row = append(row, describeCell(stat, c))
		}
		rows[i] = row
	}

	return writeTable(w, headers, rows)
}

// WriteGrowthDescribe writes the describe block of the job-growth column.
// Numeric columns get the numeric statistics; text columns get the count,
// the number of distinct labels and the most frequent label.
func WriteGrowthDescribe(w io.Writer, view *model.GrowthView) error {
	if view == nil {
		return nil
	}
	if !view.Categorical() {
		return WriteDescribe(w, []model.ColumnSummary{{
			Column:    view.Column,
			NullCount: view.NullCount,
			Stats:     view.Stats,
		}})
	}

	cats := view.Categories
	top, freq := "", ""
	if !cats.Empty() {
		top = cats.Counts[0].Name
		freq = strconv.Itoa(cats.Counts[0].Count)
	}
	rows := [][]string{
		{"count", strconv.Itoa(cats.Sum())},
		{"null_count", strconv.Itoa(view.NullCount)},
		{"unique", strconv.Itoa(cats.Len())},
		{"top", top},
		{"freq", freq},
	}
	return writeTable(w, []string{"", view.Column}, rows)
}

func describeCell(stat string, c model.ColumnSummary) string {
	switch stat {
	case "count":
		return strconv.Itoa(c.Count())
	case "null_count":
		return strconv.Itoa(c.NullCount)
	}
	s := c.Stats
	if s == nil {
		return ""
	}
	var v float64
	switch stat {
	case "mean":
		v = s.Mean
	case "std":
		v = s.Std
	case "min":
		v = s.Min
	case "25%":
		v = s.P25
	case "50%":
		v = s.Median
	case "75%":
		v = s.P75
	case "max":
		v = s.Max
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}
