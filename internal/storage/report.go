package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/ezsim/internal/ez"
	"github.com/san-kum/ezsim/internal/sim"
)

// ReportName is the file name of the text report for sample size n.
func ReportName(n int) string {
	return fmt.Sprintf("results_N%d.txt", n)
}

// WriteReport writes the plain-text report for one sample size:
//
//	N=40
//	Biases: [0.01234567 -0.00123456 0.00012345]
//	Squared Errors: [0.12345678 0.01234567 0.00123456]
func WriteReport(w io.Writer, row sim.SummaryRow) error {
	_, err := fmt.Fprintf(w, "N=%d\nBiases: %s\nSquared Errors: %s\n",
		row.SampleSize, formatVector(row.Bias), formatVector(row.SquaredError))
	return err
}

func formatVector(p ez.Parameters) string {
	parts := make([]string, 0, 3)
	for _, x := range p.Slice() {
		parts = append(parts, fmt.Sprintf("%.8f", x))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func writeReportFile(dir string, row sim.SummaryRow) error {
	file, err := os.Create(filepath.Join(dir, ReportName(row.SampleSize)))
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteReport(file, row)
}
