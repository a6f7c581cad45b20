package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/shakerbed/internal/analysis"
	"github.com/san-kum/shakerbed/internal/bed"
	"github.com/san-kum/shakerbed/internal/config"
	"github.com/san-kum/shakerbed/internal/dryer"
	"github.com/san-kum/shakerbed/internal/export"
	"github.com/san-kum/shakerbed/internal/motion"
	"github.com/san-kum/shakerbed/internal/script"
	"github.com/san-kum/shakerbed/internal/sim"
	"github.com/san-kum/shakerbed/internal/storage"
	"github.com/san-kum/shakerbed/internal/tilt"
	"github.com/san-kum/shakerbed/internal/viz"
)

var (
	configFile string
	presetName string
	dataDir    string
	themeName  string
	pellets    int
	seed       int64

	seconds   float64
	loop      bool
	outPath   string
	plotDir   string
	format    string
	series    string
	sweepRuns int
	seedStart int64
	saveRun   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shakerbed",
		Short: "tilting-bed granular simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(simConfig(cfg), cfg.Theme)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&presetName, "preset", "", "named preset configuration")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "runs directory")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "HUD color theme")
	pf.IntVar(&pellets, "pellets", config.DefaultPellets, "pellet count")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 draws from the clock)")

	runCmd := &cobra.Command{
		Use:   "run [gesture]",
		Short: "run a gesture headlessly and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGesture,
	}
	runCmd.Flags().Float64Var(&seconds, "seconds", 0, "simulated duration (0 runs until the bed settles)")
	runCmd.Flags().BoolVar(&loop, "loop", false, "re-arm the gesture after completion")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render a saved run to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotDir, "dir", ".", "output directory")
	plotCmd.Flags().StringVar(&format, "format", "png", "png or svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "re-emit a run's series as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "stats, chart and centroid spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "agitation", "series to chart: agitation or spread")

	sweepCmd := &cobra.Command{
		Use:   "sweep [gesture]",
		Short: "run one gesture across consecutive seeds",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepGesture,
	}
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "number of seeds")
	sweepCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first seed")
	sweepCmd.Flags().Float64Var(&seconds, "seconds", 20, "simulated duration per run")
	sweepCmd.Flags().BoolVar(&loop, "loop", false, "re-arm the gesture after completion")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a YAML gesture timeline headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&saveRun, "save", false, "record the session as a run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the physics step at several pellet counts",
		RunE:  benchStep,
	}

	dryCmd := &cobra.Command{
		Use:   "dry",
		Short: "run the batch drying-process simulation",
		RunE:  runDryer,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, analyzeCmd,
		sweepCmd, scriptCmd, benchCmd, dryCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: defaults, then preset, then
// config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		p := config.GetPreset(presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", presetName, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("pellets") {
		cfg.Pellets = pellets
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	return cfg, cfg.Validate()
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Pellets: cfg.Pellets,
		Seed:    cfg.Seed,
		Dt:      cfg.Dt(),
	}
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func runGesture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	name := cfg.Run.Gesture
	if len(args) > 0 {
		name = args[0]
	}
	gesture, err := motion.ParseGesture(name)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seconds") {
		seconds = cfg.Run.Seconds
	}
	if !cmd.Flags().Changed("loop") {
		loop = cfg.Run.Loop
	}

	fmt.Printf("running %s for %s...\n", gesture, describeSpan(seconds))
	start := time.Now()
	res, err := sim.Run(context.Background(), simConfig(cfg), gesture, seconds, loop)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d ticks (%.1fs simulated) in %v\n", res.Ticks, res.Seconds, elapsed)
	fmt.Printf("run id: %s\n", runID)
	printMetrics(res.Metrics)
	return nil
}

func describeSpan(s float64) string {
	if s <= 0 {
		return "as long as it takes to settle"
	}
	return fmt.Sprintf("%.1fs", s)
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGESTURE\tTIME\tSECONDS\tPELLETS\tSEED\tLOOP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%d\t%v\n",
			run.ID,
			run.Gesture,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seconds,
			run.Pellets,
			run.Seed,
			run.Loop,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	runID := args[0]

	ser, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	final, err := st.LoadFinal(runID)
	if err != nil {
		return err
	}

	seriesPath := filepath.Join(plotDir, runID+"_series."+format)
	if err := export.SaveSeries(seriesPath, runID, ser.Times, ser.Agitation, ser.Spread); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", seriesPath)

	finalPath := filepath.Join(plotDir, runID+"_final."+format)
	if err := export.SaveScatter(finalPath, runID+" final positions", final); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", finalPath)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	if outPath == "" {
		return st.ExportCSV(os.Stdout, args[0])
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportCSV(f, args[0]); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	runID := args[0]

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	ser, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	var data []float64
	switch series {
	case "agitation":
		data = ser.Agitation
	case "spread":
		data = ser.Spread
	default:
		return fmt.Errorf("unknown series %q, want agitation or spread", series)
	}

	fmt.Printf("run: %s (%s, %d pellets, seed %d)\n\n", runID, meta.Gesture, meta.Pellets, meta.Seed)

	stats := analysis.Describe(data)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", stats.Count)
	fmt.Fprintf(w, "min\t%.4f\n", stats.Min)
	fmt.Fprintf(w, "max\t%.4f\n", stats.Max)
	fmt.Fprintf(w, "mean\t%.4f\n", stats.Mean)
	fmt.Fprintf(w, "std\t%.4f\n", stats.Std)
	fmt.Fprintf(w, "final\t%.4f\n", stats.Last)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(series+" vs ticks"),
	))

	// the centroid's x component carries the rolling-tilt oscillation
	centroidX := make([]float64, len(ser.Centroids))
	for i, c := range ser.Centroids {
		centroidX[i] = c.X
	}
	sp, err := analysis.PowerSpectrum(centroidX, meta.Dt)
	if err != nil {
		fmt.Printf("\ncentroid spectrum unavailable: %v\n", err)
		return nil
	}
	freq, _ := sp.Dominant()

	fmt.Println()
	fmt.Println(asciigraph.Plot(sp.Power[:len(sp.Power)/4],
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("centroid power spectrum"),
	))
	fmt.Printf("\ndominant centroid frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1/freq)
	}
	return nil
}

func sweepGesture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gesture, err := motion.ParseGesture(args[0])
	if err != nil {
		return err
	}

	ens := &sim.Ensemble{
		Base:      simConfig(cfg),
		Gesture:   gesture,
		Seconds:   seconds,
		Loop:      loop,
		Runs:      sweepRuns,
		SeedStart: seedStart,
	}

	fmt.Printf("sweeping %s across %d seeds...\n\n", gesture, sweepRuns)
	start := time.Now()
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tFINAL_SPREAD\tMEAN_AGIT\tPEAK_AGIT\tSETTLED_TICK")
	for _, res := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.0f\n",
			res.Seed,
			res.Metrics["final_spread"],
			res.Metrics["mean_agitation"],
			res.Metrics["peak_agitation"],
			res.Metrics["settled_tick"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, min, max := sim.EnsembleStats(results)
	fmt.Printf("\nfinal spread: mean %.4f, min %.4f, max %.4f\n", mean, min, max)
	fmt.Printf("swept in %v\n", time.Since(start))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps, %.1fs simulated\n", sc.Name, len(sc.Steps), sc.Duration())
	res, err := script.Run(context.Background(), simConfig(cfg), sc, func(i int, step script.Step) {
		fmt.Printf("  step %d/%d: %s for %.1fs\n", i+1, len(sc.Steps), step.Gesture, step.Seconds)
	})
	if err != nil {
		return err
	}

	printMetrics(res.Metrics)
	if saveRun {
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	const ticks = 600
	counts := []int{100, 250, 500, 1000}

	fmt.Printf("timing %d physics steps per pellet count\n\n", ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PELLETS\tTOTAL\tNS/STEP\tSTEPS/SEC")

	force := tilt.SlopeForce(tilt.Lifts{motion.LiftHeight, 0, 0}, bed.Radius, motion.ForceFactor)
	for _, n := range counts {
		rng := rand.New(rand.NewSource(1))
		world := bed.New(bed.UniformSpread(rng, n))

		start := time.Now()
		for i := 0; i < ticks; i++ {
			world.ApplyForce(force, 1.0)
			world.Step(sim.DefaultDt)
		}
		elapsed := time.Since(start)

		perStep := elapsed / ticks
		fmt.Fprintf(w, "%d\t%v\t%d\t%.0f\n",
			n, elapsed.Round(time.Millisecond), perStep.Nanoseconds(),
			float64(ticks)/elapsed.Seconds())
	}
	return w.Flush()
}

func runDryer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res := dryer.Run(cfg.Dryer)

	fmt.Printf("dried to %.4f%% in %d minutes (target %.2f%%, reached: %v)\n",
		res.FinalMoisture, res.Minutes, cfg.Dryer.TargetMoisture, res.TargetReached)
	fmt.Printf("rates: release %.4f g/min/%%, transfer %.4f g/min/%%, regen %.4f g/min\n\n",
		res.Coefficients.PetRelease, res.Coefficients.MassTransfer, res.Coefficients.RegenRate)

	if chart := dryer.Chart(res, 80, 10); chart != "" {
		fmt.Println(chart)
		fmt.Println()
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	csvPath := filepath.Join(cfg.DataDir, "dryer_series.csv")
	if err := dryer.WriteCSV(csvPath, res); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", csvPath)

	pngPath := filepath.Join(cfg.DataDir, "dryer_chart.png")
	if err := dryer.SavePNG(pngPath, res); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", pngPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := config.ListPresets()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPELLETS\tGESTURE\tSECONDS\tLOOP\tTHEME")
	for _, name := range names {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\t%v\t%s\n",
			name, p.Pellets, p.Run.Gesture, p.Run.Seconds, p.Run.Loop, p.Theme)
	}
	return w.Flush()
}
