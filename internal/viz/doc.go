// Package viz renders recovery results for the terminal.
//
//   - [SummaryTable]: per-sample-size bias and squared error
//   - [TrendTable]: convergence slopes from the analysis package
//   - [MetricsBlock]: named scalar metrics, sorted by name
//
// Styling uses lipgloss and degrades to plain text when stdout is not a
// terminal.
package viz
