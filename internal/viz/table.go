package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/ezsim/internal/analysis"
	"github.com/san-kum/ezsim/internal/automation"
	"github.com/san-kum/ezsim/internal/sim"
)

var summaryColumns = []string{"N", "KEPT", "EXCL", "BIAS v", "BIAS a", "BIAS t", "MSE v", "MSE a", "MSE t"}

// SummaryTable renders one line per sample size.
func SummaryTable(rows []sim.SummaryRow) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := []string{
			fmt.Sprintf("%d", r.SampleSize),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%d", r.Excluded),
		}
		for _, x := range r.Bias.Slice() {
			line = append(line, fmt.Sprintf("%+.6f", x))
		}
		for _, x := range r.SquaredError.Slice() {
			line = append(line, fmt.Sprintf("%.6f", x))
		}
		cells = append(cells, line)
	}
	return Panel.Render(grid(summaryColumns, cells, nil))
}

// TrendTable renders the fitted convergence slope of each parameter.
func TrendTable(trends []analysis.Trend) string {
	cells := make([][]string, 0, len(trends))
	status := make([]lipgloss.Style, 0, len(trends))
	for _, tr := range trends {
		verdict, style := "monotone", StatusGood
		if !tr.Monotone {
			verdict, style = "stalled", StatusWarn
		}
		cells = append(cells, []string{
			tr.Param,
			fmt.Sprintf("%.3f", tr.Slope),
			fmt.Sprintf("%.3f", tr.RSquared),
			verdict,
		})
		status = append(status, style)
	}
	return grid([]string{"PARAM", "SLOPE", "R2", "TREND"}, cells, status)
}

// SweepTable renders one line per swept value and sample size.
func SweepTable(param string, points []automation.SweepResult) string {
	header := []string{param, "N", "KEPT", "BIAS v", "BIAS a", "BIAS t", "MSE v", "MSE a", "MSE t"}
	var cells [][]string
	for _, p := range points {
		for _, r := range p.Summary {
			line := []string{
				fmt.Sprintf("%.4f", p.Value),
				fmt.Sprintf("%d", r.SampleSize),
				fmt.Sprintf("%d", r.Count),
			}
			for _, x := range r.Bias.Slice() {
				line = append(line, fmt.Sprintf("%+.6f", x))
			}
			for _, x := range r.SquaredError.Slice() {
				line = append(line, fmt.Sprintf("%.6f", x))
			}
			cells = append(cells, line)
		}
	}
	return Panel.Render(grid(header, cells, nil))
}

// MetricsBlock renders label/value pairs sorted by label.
func MetricsBlock(metrics map[string]float64) string {
	names := make([]string, 0, len(metrics))
	width := 0
	for name := range metrics {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(MetricLabel.Render(fmt.Sprintf("  %-*s", width, name)))
		sb.WriteString("  ")
		sb.WriteString(MetricValue.Render(fmt.Sprintf("%.6f", metrics[name])))
		sb.WriteString("\n")
	}
	return sb.String()
}

// grid right-aligns every column to its widest cell. The last column of row i
// is rendered with lastStyle[i] when given.
func grid(header []string, cells [][]string, lastStyle []lipgloss.Style) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], len(c))
		}
	}

	pad := func(row []string) []string {
		out := make([]string, len(row))
		for i, c := range row {
			out[i] = fmt.Sprintf("%*s", widths[i], c)
		}
		return out
	}

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(strings.Join(pad(header), "  ")))
	sb.WriteString("\n")
	for i, row := range cells {
		padded := pad(row)
		if i < len(lastStyle) && len(padded) > 0 {
			padded[len(padded)-1] = lastStyle[i].Render(padded[len(padded)-1])
		}
		sb.WriteString(strings.Join(padded, "  "))
		if i < len(cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
