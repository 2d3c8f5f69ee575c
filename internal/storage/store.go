package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/ezsim/internal/ez"
	"github.com/san-kum/ezsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	recordsFile  = "records.csv"
	summaryFile  = "summary.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string              `json:"id"`
	Timestamp   time.Time           `json:"timestamp"`
	Seed        uint64              `json:"seed"`
	Iterations  int                 `json:"iterations"`
	SampleSizes []int               `json:"sample_sizes"`
	Profile     string              `json:"profile,omitempty"`
	Ranges      sim.ParameterRanges `json:"ranges"`
	MaxRetries  int                 `json:"max_retries"`
	Workers     int                 `json:"workers"`
	Excluded    int                 `json:"excluded"`
	Elapsed     time.Duration       `json:"elapsed_ns"`
	Metrics     map[string]float64  `json:"metrics"`
}

// Save writes one run directory holding the metadata, the raw records, the
// summary table and a plain-text report per sample size. ID and Timestamp
// are assigned here.
func (s *Store) Save(meta RunMetadata, records []sim.Record, rows []sim.SummaryRow) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, recordsFile), recordHeader, recordRows(records)); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, summaryFile), summaryHeader, summaryRows(rows)); err != nil {
		return "", err
	}

	for _, row := range rows {
		if err := writeReportFile(runDir, row); err != nil {
			return "", err
		}
	}

	return meta.ID, nil
}

// List returns the stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSummary reads back the summary table of a run.
func (s *Store) LoadSummary(runID string) ([]sim.SummaryRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, summaryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.SummaryRow{}, nil
	}

	rows := make([]sim.SummaryRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseSummaryRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", summaryFile, i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var recordHeader = []string{
	"sample_size", "iteration", "attempts", "excluded",
	"true_v", "true_a", "true_t",
	"accuracy", "mean_rt", "var_rt",
	"recovered_v", "recovered_a", "recovered_t",
	"bias_v", "bias_a", "bias_t",
	"se_v", "se_a", "se_t",
}

var summaryHeader = []string{
	"sample_size", "count", "excluded",
	"bias_v", "bias_a", "bias_t",
	"se_v", "se_a", "se_t",
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func appendParams(row []string, p ez.Parameters) []string {
	for _, x := range p.Slice() {
		row = append(row, formatFloat(x))
	}
	return row
}

func recordRows(records []sim.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.SampleSize),
			strconv.Itoa(r.Iteration),
			strconv.Itoa(r.Attempts),
			strconv.FormatBool(r.Excluded),
		}
		row = appendParams(row, r.True)
		row = append(row, formatFloat(r.Observed.Accuracy), formatFloat(r.Observed.MeanRT), formatFloat(r.Observed.VarRT))
		row = appendParams(row, r.Recovered)
		row = appendParams(row, r.Bias)
		row = appendParams(row, r.SquaredError)
		out = append(out, row)
	}
	return out
}

func summaryRows(rows []sim.SummaryRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{strconv.Itoa(r.SampleSize), strconv.Itoa(r.Count), strconv.Itoa(r.Excluded)}
		row = appendParams(row, r.Bias)
		row = appendParams(row, r.SquaredError)
		out = append(out, row)
	}
	return out
}

func parseSummaryRow(rec []string) (sim.SummaryRow, error) {
	if len(rec) != len(summaryHeader) {
		return sim.SummaryRow{}, fmt.Errorf("expected %d fields, got %d", len(summaryHeader), len(rec))
	}

	ints := make([]int, 3)
	for i := range ints {
		v, err := strconv.Atoi(rec[i])
		if err != nil {
			return sim.SummaryRow{}, err
		}
		ints[i] = v
	}
	floats := make([]float64, 6)
	for i := range floats {
		v, err := strconv.ParseFloat(rec[3+i], 64)
		if err != nil {
			return sim.SummaryRow{}, err
		}
		floats[i] = v
	}

	return sim.SummaryRow{
		SampleSize:   ints[0],
		Count:        ints[1],
		Excluded:     ints[2],
		Bias:         ez.Parameters{V: floats[0], A: floats[1], T: floats[2]},
		SquaredError: ez.Parameters{V: floats[3], A: floats[4], T: floats[5]},
	}, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
