package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/ezsim/internal/analysis"
	"github.com/san-kum/ezsim/internal/automation"
	"github.com/san-kum/ezsim/internal/config"
	"github.com/san-kum/ezsim/internal/experiment"
	"github.com/san-kum/ezsim/internal/ez"
	"github.com/san-kum/ezsim/internal/logging"
	"github.com/san-kum/ezsim/internal/metrics"
	"github.com/san-kum/ezsim/internal/sim"
	"github.com/san-kum/ezsim/internal/storage"
	"github.com/san-kum/ezsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	iterations int
	sizes      string
	seed       uint64
	workers    int
	retries    int
	profile    string
	metricList []string
	configFile string
	preset     string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// predict
	drift       float64
	boundary    float64
	nondecision float64
)

var logger *slog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:   "ezsim",
		Short: "EZ-diffusion simulate-and-recover lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ezsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (info, debug, trace)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulate-and-recover",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run summary and convergence",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and summary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets, range profiles and metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tITERATIONS\tSIZES\tPROFILE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, p.Iterations, joinInts(p.SampleSizes), p.Profile)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nprofiles: %s\n", strings.Join(reg.ListProfiles(), ", "))
			fmt.Printf("metrics:  %s\n", strings.Join(reg.ListMetrics(), ", "))
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file and save each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "pin one true parameter at evenly spaced values and compare recovery",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "v", "parameter to pin (v, a, t)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 2.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 4, "number of values")

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "print the noiseless EZ statistics for v, a, t",
		Args:  cobra.NoArgs,
		RunE:  predict,
	}
	predictCmd.Flags().Float64VarP(&drift, "drift", "v", 1.0, "drift rate")
	predictCmd.Flags().Float64VarP(&boundary, "boundary", "a", 1.0, "boundary separation")
	predictCmd.Flags().Float64VarP(&nondecision, "nondecision", "t", 0.3, "nondecision time")

	rootCmd.AddCommand(runCmd, batchCmd, sweepCmd, listCmd, showCmd, exportCmd, presetsCmd, predictCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "iterations per sample size")
	cmd.Flags().StringVar(&sizes, "sizes", "10,40,4000", "comma separated sample sizes")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "sample sizes simulated concurrently")
	cmd.Flags().IntVar(&retries, "retries", sim.DefaultMaxRetries, "redraws before an iteration is excluded")
	cmd.Flags().StringVar(&profile, "profile", config.DefaultProfile, "parameter range profile")
	cmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to compute (default rmse, exclusion and retry rates)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		logger = logging.NewLogger(cfg.LogLevel, os.Stderr)
	}

	registry := experiment.NewRegistry()
	ranges, err := cfg.ResolveRanges(registry.GetProfile)
	if err != nil {
		return err
	}
	ms, err := registry.Metrics(cfg.Metrics)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Iterations:  cfg.Iterations,
		SampleSizes: cfg.SampleSizes,
		Seed:        cfg.Seed,
		Workers:     cfg.Workers,
		MaxRetries:  cfg.MaxRetries,
		Ranges:      ranges,
	})
	if err := exp.Setup(ms); err != nil {
		return err
	}

	logger.Info("starting run",
		"iterations", cfg.Iterations,
		"sizes", joinInts(cfg.SampleSizes),
		"seed", cfg.Seed,
		"workers", cfg.Workers)
	start := time.Now()

	out, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logExclusions(out)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := saveRun(st, cfg, ranges, out, elapsed)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("records: %d\n\n", len(out.Records))
	fmt.Println(viz.SummaryTable(out.Summary))
	fmt.Println(viz.Title.Render("metrics"))
	fmt.Print(viz.MetricsBlock(out.Metrics))
	return nil
}

func logExclusions(out *experiment.Outcome) {
	for _, rec := range out.Records {
		if rec.Excluded {
			logger.Log(context.Background(), logging.LevelTrace, "iteration excluded", "reason", rec.Reason)
		}
	}
	if n := out.Excluded(); n > 0 {
		logger.Warn("iterations excluded", "count", n)
	}
}

func saveRun(st *storage.Store, cfg *config.Config, ranges sim.ParameterRanges, out *experiment.Outcome, elapsed time.Duration) (string, error) {
	runID, err := st.Save(storage.RunMetadata{
		Seed:        cfg.Seed,
		Iterations:  cfg.Iterations,
		SampleSizes: cfg.SampleSizes,
		Profile:     cfg.Profile,
		Ranges:      ranges,
		MaxRetries:  cfg.MaxRetries,
		Workers:     cfg.Workers,
		Excluded:    out.Excluded(),
		Elapsed:     elapsed,
		Metrics:     out.Metrics,
	}, out.Records, out.Summary)
	if err != nil {
		return "", err
	}
	logger.Info("run saved", "id", runID, "elapsed", elapsed)
	return runID, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	results, err := automation.RunScenario(context.Background(), scenario, experiment.NewRegistry(), logger)
	elapsed := time.Since(start)

	// steps that finished before a failure are still saved
	for i, r := range results {
		logExclusions(r.Outcome)
		runID, serr := saveRun(st, r.Step.Config(), r.Ranges, r.Outcome, elapsed)
		if serr != nil {
			return serr
		}
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		fmt.Println(viz.Title.Render(name + "  " + runID))
		fmt.Println(viz.SummaryTable(r.Outcome.Summary))
		fmt.Println()
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	param, err := metrics.ParseParam(sweepParam)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	ranges, err := cfg.ResolveRanges(registry.GetProfile)
	if err != nil {
		return err
	}

	logger.Info("starting sweep", "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps)
	points, err := automation.RunSweep(context.Background(), &automation.Sweep{
		Param:      param,
		Min:        sweepMin,
		Max:        sweepMax,
		NumSteps:   sweepSteps,
		Base:       cfg,
		BaseRanges: ranges,
	}, registry, logger)
	if err != nil {
		return err
	}

	fmt.Println(viz.SweepTable(sweepParam, points))
	return nil
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Seed = seed

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Seed = cfg.Seed
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Seed == 0 {
			fileCfg.Seed = cfg.Seed
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("iterations") || (preset == "" && configFile == "") {
		cfg.Iterations = iterations
	}
	if flags.Changed("sizes") || (preset == "" && configFile == "") {
		parsed, err := parseSizes(sizes)
		if err != nil {
			return nil, err
		}
		cfg.SampleSizes = parsed
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("retries") {
		cfg.MaxRetries = retries
	}
	if flags.Changed("profile") {
		cfg.Profile = profile
		cfg.Ranges = nil
	}
	if flags.Changed("metrics") {
		cfg.Metrics = metricList
	}
	return cfg, nil
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid sample size %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tITER\tSIZES\tSEED\tEXCL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Iterations,
			joinInts(run.SampleSizes),
			run.Seed,
			run.Excluded,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render("run " + meta.ID))
	fmt.Println(viz.Subtle.Render(fmt.Sprintf("%d iterations, seed %d, %s",
		meta.Iterations, meta.Seed, meta.Timestamp.Format("2006-01-02 15:04:05"))))
	fmt.Println()
	fmt.Println(viz.SummaryTable(rows))

	trends, err := analysis.Convergence(rows)
	if err != nil {
		logger.Debug("skipping convergence", "err", err)
		return nil
	}
	fmt.Println()
	fmt.Println(viz.TrendTable(trends))

	if len(meta.Metrics) > 0 {
		fmt.Println()
		fmt.Println(viz.Title.Render("metrics"))
		fmt.Print(viz.MetricsBlock(meta.Metrics))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*storage.RunMetadata
		Summary []sim.SummaryRow `json:"summary"`
	}{meta, rows})
}

func predict(cmd *cobra.Command, args []string) error {
	p := ez.Parameters{V: drift, A: boundary, T: nondecision}
	pred := ez.Forward(p)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "accuracy\t%.8f\n", pred.Accuracy)
	fmt.Fprintf(w, "mean decision time\t%.8f\n", pred.MeanDecisionTime)
	fmt.Fprintf(w, "mean rt\t%.8f\n", pred.MeanRT)
	fmt.Fprintf(w, "rt variance\t%.8f\n", pred.VarRT)
	if err := w.Flush(); err != nil {
		return err
	}

	back, err := ez.Inverse(pred.Statistics())
	if err != nil {
		return err
	}
	fmt.Printf("\nround trip: v=%.8f a=%.8f t=%.8f\n", back.V, back.A, back.T)
	return nil
}
