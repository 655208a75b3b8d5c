package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonduan/solow/internal/config"
	"github.com/jonduan/solow/internal/dynamics"
	"github.com/jonduan/solow/internal/roots"
	"github.com/jonduan/solow/internal/solow"
	"github.com/jonduan/solow/internal/storage"
	"github.com/jonduan/solow/internal/sweep"
	"github.com/jonduan/solow/internal/tui"
	"github.com/jonduan/solow/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	family     string
	production string
	gParam     float64
	nParam     float64
	sParam     float64
	deltaParam float64
	a0Param    float64
	l0Param    float64
	alphaParam float64
	sigmaParam float64

	methodName string
	lower      float64
	upper      float64
	tolerance  float64
	maxIter    int

	k0      float64
	dt      float64
	horizon float64
	stepper string

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	chartWidth  int
	chartHeight int

	saveRun bool
)

var logger = zap.NewNop()

func main() {
	err := newRootCmd().Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solow",
		Short: "solow growth model workbench",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			zcfg := zap.NewProductionConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			l, err := zcfg.Build()
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(nil)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".solow", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for the steady state",
		RunE:  runSolve,
	}
	addModelFlags(solveCmd)
	addSolverFlags(solveCmd)
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "record the run")

	evalCmd := &cobra.Command{
		Use:   "eval [k]",
		Short: "evaluate the model at a capital stock",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEval,
	}
	addModelFlags(evalCmd)

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "simulate the transition path and record it",
		RunE:  runPath,
	}
	addModelFlags(pathCmd)
	addSolverFlags(pathCmd)
	addPathFlags(pathCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a stored run, or the configured model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	addModelFlags(plotCmd)
	addSolverFlags(plotCmd)
	addChartFlags(plotCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "trace the steady state across one parameter",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	addSolverFlags(sweepCmd)
	addChartFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "range start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "grid points")
	_ = sweepCmd.MarkFlagRequired("param")

	compareCmd := &cobra.Command{
		Use:   "compare [method...]",
		Short: "run several solvers on the same model",
		RunE:  runCompare,
	}
	addModelFlags(compareCmd)
	addSolverFlags(compareCmd)

	goldenCmd := &cobra.Command{
		Use:   "golden",
		Short: "solve for the golden-rule savings rate",
		RunE:  runGolden,
	}
	addModelFlags(goldenCmd)
	addSolverFlags(goldenCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list calibration presets for a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  runList,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's trajectory as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}
	addModelFlags(tuiCmd)

	rootCmd.AddCommand(solveCmd, evalCmd, pathCmd, plotCmd, sweepCmd, compareCmd,
		goldenCmd, presetsCmd, listCmd, exportJSONCmd, exportCSVCmd, tuiCmd)
	return rootCmd
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&family, "family", "cobb_douglas", "production family")
	cmd.Flags().StringVar(&production, "production", "", "custom aggregate production F(K, A, L)")
	cmd.Flags().Float64Var(&gParam, "g", 0.02, "technology growth rate")
	cmd.Flags().Float64Var(&nParam, "n", 0.01, "population growth rate")
	cmd.Flags().Float64Var(&sParam, "s", 0.2, "savings rate")
	cmd.Flags().Float64Var(&deltaParam, "delta", 0.05, "depreciation rate")
	cmd.Flags().Float64Var(&a0Param, "A0", 1.0, "initial technology level")
	cmd.Flags().Float64Var(&l0Param, "L0", 1.0, "initial labor force")
	cmd.Flags().Float64Var(&alphaParam, "alpha", 0.33, "capital share")
	cmd.Flags().Float64Var(&sigmaParam, "sigma", 0.95, "elasticity of substitution (ces)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset calibration")
}

func addSolverFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&methodName, "method", "brent", "root-finding method")
	cmd.Flags().Float64Var(&lower, "lower", config.DefaultLower, "bracket lower bound")
	cmd.Flags().Float64Var(&upper, "upper", config.DefaultUpper, "bracket upper bound")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "convergence tolerance (0 = solver default)")
	cmd.Flags().IntVar(&maxIter, "max-iterations", 0, "iteration cap (0 = solver default)")
}

func addPathFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&k0, "k0", config.DefaultK0, "initial capital per effective worker")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&horizon, "horizon", config.DefaultHorizon, "simulated horizon")
	cmd.Flags().StringVar(&stepper, "stepper", "rk4", "integration stepper")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&chartWidth, "width", 80, "chart width")
	cmd.Flags().IntVar(&chartHeight, "height", 10, "chart height")
}

// resolveConfig layers the calibration sources: defaults, then preset,
// then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(family, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(family))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("family") {
		cfg.Family = family
	}
	if fl.Changed("production") {
		cfg.Production = production
	}
	paramFlags := map[string]float64{
		"g": gParam, "n": nParam, "s": sParam, "delta": deltaParam,
		"A0": a0Param, "L0": l0Param, "alpha": alphaParam, "sigma": sigmaParam,
	}
	for name, value := range paramFlags {
		if fl.Changed(name) {
			cfg.Params[name] = value
		}
	}
	if fl.Changed("method") {
		cfg.Solver.Method = methodName
	}
	if fl.Changed("lower") {
		cfg.Solver.Lower = lower
	}
	if fl.Changed("upper") {
		cfg.Solver.Upper = upper
	}
	if fl.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if fl.Changed("max-iterations") {
		cfg.Solver.MaxIterations = maxIter
	}
	if fl.Changed("k0") {
		cfg.Path.K0 = k0
	}
	if fl.Changed("dt") {
		cfg.Path.Dt = dt
	}
	if fl.Changed("horizon") {
		cfg.Path.Horizon = horizon
	}
	if fl.Changed("stepper") {
		cfg.Path.Stepper = stepper
	}
	return cfg, nil
}

func buildModel(cmd *cobra.Command) (*config.Config, *solow.Model, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	m, err := cfg.Model()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("model ready",
		zap.String("family", cfg.Family),
		zap.String("production", cfg.Production),
		zap.Int("params", len(cfg.Params)))
	return cfg, m, nil
}

func modelLabel(cfg *config.Config) string {
	if cfg.Production != "" {
		return "custom"
	}
	return cfg.Family
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := m.FindSteadyState(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	logger.Debug("solve finished",
		zap.Float64("root", res.Root),
		zap.Int("iterations", res.Iterations),
		zap.Bool("converged", res.Converged),
		zap.Duration("elapsed", elapsed))

	ystar := m.Output(res.Root)
	s := m.Params()["s"]
	lambda, halfLife := m.ConvergenceRate(res.Root)

	fmt.Printf("model: %s\n", modelLabel(cfg))
	fmt.Printf("method: %s\n", method.Name())
	fmt.Printf("k*: %.9f (%d iterations, residual %.2e)\n", res.Root, res.Iterations, res.Residual)
	if !res.Converged {
		fmt.Println("warning: solver hit the iteration cap before converging")
	}
	if kstar, err := m.SteadyState(); err == nil {
		fmt.Printf("closed form: %.9f\n", kstar)
	}
	fmt.Printf("y*: %.6f\n", ystar)
	fmt.Printf("c*: %.6f\n", (1-s)*ystar)
	fmt.Printf("lambda: %.6f\n", lambda)
	fmt.Printf("half-life: %.2f\n", halfLife)
	fmt.Printf("elapsed: %v\n", elapsed)

	if !saveRun {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runMetadata("solve", cfg, m, method, res))
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runMetadata(kind string, cfg *config.Config, m *solow.Model, method roots.Method, res roots.Result) storage.RunMetadata {
	return storage.RunMetadata{
		Kind:          kind,
		Family:        modelLabel(cfg),
		Params:        m.Params(),
		Method:        method.Name(),
		Lower:         cfg.Solver.Lower,
		Upper:         cfg.Solver.Upper,
		Tolerance:     cfg.Solver.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
		KStar:         res.Root,
		YStar:         m.Output(res.Root),
		Iterations:    res.Iterations,
		Converged:     res.Converged,
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	k := 1.0
	if len(args) == 1 {
		k, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("bad capital stock %q: %w", args[0], err)
		}
	}

	fmt.Printf("model: %s\n", modelLabel(cfg))
	fmt.Printf("f(k)   = %s\n", m.Intensive())
	fmt.Printf("f'(k)  = %s\n", m.Marginal())
	fmt.Printf("k_dot  = %s\n", m.Motion())
	fmt.Println()
	fmt.Printf("f(%g) = %.6f\n", k, m.Output(k))
	fmt.Printf("f'(%g) = %.6f\n", k, m.MarginalProduct(k))
	fmt.Printf("k_dot(%g) = %.6f\n", k, m.KDot(k))
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}
	simCfg, err := cfg.Sim()
	if err != nil {
		return err
	}

	res, err := m.FindSteadyState(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
	if err != nil {
		return err
	}

	fmt.Printf("simulating %s from k0=%g (dt=%g, horizon=%g)...\n",
		modelLabel(cfg), cfg.Path.K0, simCfg.Dt, simCfg.Horizon)

	path, err := dynamics.Simulate(context.Background(), m, cfg.Path.K0, simCfg)
	if err != nil {
		return err
	}
	logger.Debug("simulated",
		zap.Int("samples", path.Len()),
		zap.Bool("truncated", path.Truncated))

	last := path.Len() - 1
	fmt.Printf("samples: %d\n", path.Len())
	fmt.Printf("final k: %.6f (steady state %.6f)\n", path.K[last], res.Root)
	if hl := dynamics.HalfLife(path, res.Root); !math.IsNaN(hl) {
		fmt.Printf("half-life: %.2f\n", hl)
	}
	if path.Truncated {
		fmt.Println("warning: path diverged and was truncated")
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runMetadata("path", cfg, m, method, res))
	if err != nil {
		return err
	}
	if err := st.SavePath(runID, path); err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return plotStoredRun(args[0])
	}

	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}
	res, err := m.FindSteadyState(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
	if err != nil {
		return err
	}

	lo, hi := res.Root*0.1, res.Root*2
	fmt.Printf("model: %s (k* = %.6f)\n\n", modelLabel(cfg), res.Root)
	fmt.Println(viz.Diagram(m, lo, hi, chartWidth, chartHeight))
	fmt.Println()
	fmt.Println(viz.ResidualChart(m, lo, hi, chartWidth, chartHeight))
	return nil
}

func plotStoredRun(runID string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	path, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if path.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("family: %s\n", meta.Family)
	fmt.Printf("samples: %d\n\n", path.Len())
	fmt.Println(viz.PathChart(path, chartWidth, chartHeight))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}

	r := sweep.Range{Param: sweepParam, Min: sweepFrom, Max: sweepTo, Steps: sweepSteps}
	points, err := sweep.Run(m, r, method, cfg.Solver.Lower, cfg.Solver.Upper, cfg.Options())
	if err != nil {
		return err
	}
	logger.Debug("sweep finished", zap.String("param", sweepParam), zap.Int("points", len(points)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tK*\tY*\tITERS\tCONVERGED")
	for _, p := range points {
		fmt.Fprintf(w, "%.6f\t%.6f\t%.6f\t%d\t%v\n", p.Value, p.KStar, p.YStar, p.Iterations, p.Converged)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	chart := viz.SweepChart(points, sweepParam, chartWidth, chartHeight)
	if chart != "" {
		fmt.Println()
		fmt.Println(chart)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = roots.Methods()
	}

	fmt.Printf("comparing solvers on %s (bracket [%g, %g])\n\n",
		modelLabel(cfg), cfg.Solver.Lower, cfg.Solver.Upper)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tROOT\tRESIDUAL\tITERS\tCONVERGED\tTIME")
	for _, name := range names {
		method, err := roots.New(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		res, err := m.FindSteadyState(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.9f\t%.2e\t%d\t%v\t%v\n",
			name, res.Root, res.Residual, res.Iterations, res.Converged, elapsed)
	}
	return w.Flush()
}

func runGolden(cmd *cobra.Command, args []string) error {
	cfg, m, err := buildModel(cmd)
	if err != nil {
		return err
	}
	method, err := cfg.Method()
	if err != nil {
		return err
	}

	g, err := m.GoldenRule(cfg.Solver.Lower, cfg.Solver.Upper, method, cfg.Options())
	if err != nil {
		return err
	}

	s := m.Params()["s"]
	fmt.Printf("model: %s\n", modelLabel(cfg))
	fmt.Printf("golden-rule k: %.6f (%d iterations)\n", g.Capital, g.Iterations)
	fmt.Printf("golden-rule s: %.6f (current %.6f)\n", g.SavingsRate, s)
	fmt.Printf("golden-rule c: %.6f\n", g.Consumption)
	if !g.Converged {
		fmt.Println("warning: solver hit the iteration cap before converging")
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
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
	fmt.Fprintln(w, "ID\tKIND\tFAMILY\tTIME\tK*\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.6f\t%v\n",
			run.ID,
			run.Kind,
			run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.KStar,
			run.Converged,
		)
	}
	return w.Flush()
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	path, err := st.LoadPath(runID)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		path = nil
	}
	return storage.ExportJSON(os.Stdout, meta, path)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	path, err := st.LoadPath(runID)
	if err != nil {
		return err
	}
	if path.Len() == 0 {
		return fmt.Errorf("no trajectory recorded for run %s", runID)
	}
	return storage.ExportCSV(os.Stdout, path)
}
