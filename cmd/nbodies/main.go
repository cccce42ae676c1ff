package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mkarren/nbodies/internal/analysis"
	"github.com/mkarren/nbodies/internal/config"
	"github.com/mkarren/nbodies/internal/dynamics"
	"github.com/mkarren/nbodies/internal/export"
	"github.com/mkarren/nbodies/internal/metrics"
	"github.com/mkarren/nbodies/internal/sim"
	"github.com/mkarren/nbodies/internal/storage"
	"github.com/mkarren/nbodies/internal/tui"
)

var (
	dataDir     string
	configFile  string
	preset      string
	orbitalFile string

	dt           float64
	steps        int
	numRuns      int
	distance     float64
	timeScale    float64
	oversampling int
	bounded      bool
	randomPhase  bool
	anomaly      float64

	svgOut   string
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nbodies [seed.yaml]",
		Short: "interactive gravitational n-body sandbox",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInteractive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nbodies", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset configuration")
	rootCmd.PersistentFlags().StringVar(&orbitalFile, "orbital", "", "orbital seed file")
	rootCmd.Flags().Float64Var(&distance, "distance", 0, "screen units per meter")
	rootCmd.Flags().Float64Var(&timeScale, "time", 0, "time scale")
	rootCmd.Flags().IntVar(&oversampling, "oversampling", 0, "substeps per tick")
	rootCmd.Flags().BoolVar(&bounded, "bounded", false, "wrap bodies at the edges")
	rootCmd.Flags().BoolVar(&randomPhase, "random-anomaly", false, "seed each body at a random orbital phase")
	rootCmd.Flags().Float64Var(&anomaly, "anomaly", 0, "common true anomaly for seeded bodies")

	runCmd := &cobra.Command{
		Use:   "run [seed.yaml]",
		Short: "headless run, stored for later inspection",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.033, "tick length in seconds")
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of ticks")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [seed.yaml]",
		Short: "many runs at random orbital phases, drift statistics across them",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().Float64Var(&dt, "dt", 0.033, "tick length in seconds")
	ensembleCmd.Flags().IntVar(&steps, "steps", 1000, "number of ticks")
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of parallel runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's observables",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the orbital period from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [seed.yaml]",
		Short: "run briefly and write an SVG snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().Float64Var(&dt, "dt", 0.033, "tick length in seconds")
	snapshotCmd.Flags().IntVar(&steps, "steps", 300, "number of ticks")
	snapshotCmd.Flags().StringVar(&svgOut, "out", "snapshot.svg", "output file")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 0, "pixels per meter (default: config distance)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, listCmd, plotCmd, analyzeCmd, exportCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then
// preset, then config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("distance") {
		cfg.Distance = distance
	}
	if cmd.Flags().Changed("time") {
		cfg.Time = timeScale
	}
	if cmd.Flags().Changed("oversampling") {
		cfg.Oversampling = oversampling
	}
	if cmd.Flags().Changed("bounded") {
		cfg.Bounded = bounded
	}
	if cmd.Flags().Changed("random-anomaly") {
		cfg.RandomAnomaly = randomPhase
	}
	if cmd.Flags().Changed("anomaly") {
		cfg.Anomaly = anomaly
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildCluster seeds a cluster from the seed file named on the command
// line or in the config; with neither, the cluster starts empty.
func buildCluster(cfg *config.Config, args []string) (*dynamics.Cluster, string, error) {
	path := cfg.Seed
	if orbitalFile != "" {
		path = orbitalFile
	}
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return dynamics.EmptyCluster(), "empty", nil
	}

	seed, err := dynamics.LoadSeed(path)
	if err != nil {
		return nil, "", err
	}

	if cfg.RandomAnomaly {
		return dynamics.SeededAtRandom(seed), path, nil
	}
	return dynamics.SeededAt(seed, cfg.Anomaly), path, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cluster, _, err := buildCluster(cfg, args)
	if err != nil {
		return err
	}
	return tui.Run(sim.New(cluster, cfg))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cluster, seedName, err := buildCluster(cfg, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(cluster, cfg)
	bodies := cluster.Count()

	start := time.Now()
	result, err := s.Run(context.Background(), dt, steps,
		metrics.NewEnergyDrift(), metrics.NewMomentumDrift(), metrics.NewSpread())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(seedName, dt, bodies, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tPOSITION\tVELOCITY")
	for i := 0; i < cluster.Count(); i++ {
		b := cluster.Body(i)
		p := b.Shape.Center
		fmt.Fprintf(w, "%s\t%.3g\t(%.3g, %.3g)\t(%.3g, %.3g)\n",
			b.Name, b.Mass, p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	seed, err := dynamics.LoadSeed(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("running %d seeds of %s...\n\n", numRuns, args[0])
	start := time.Now()
	results, err := sim.NewEnsemble(seed, cfg, numRuns).Run(context.Background(), dt, steps)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tENERGY_DRIFT\tMOMENTUM_DRIFT\tSPREAD")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.3e\t%.3e\t%.3e\n", i,
			r.Metrics["energy_drift"], r.Metrics["momentum_drift"], r.Metrics["spread"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEED\tTIME\tBODIES\tSTEPS\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3fs\n",
			run.ID, run.Seed,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies, run.Steps, run.Dt)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nsamples: %d\n\n", meta.ID, len(series.Times))

	fmt.Println(asciigraph.Plot(series.Energy,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("total energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(series.AngularMomentum,
		asciigraph.Height(10), asciigraph.Width(80),
		asciigraph.Caption("angular momentum")))

	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Energy) < 4 {
		return fmt.Errorf("series too short for analysis")
	}

	ps := analysis.Spectrum(series.Energy)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/2]
	}

	fmt.Printf("spectral analysis: %s\n\n", meta.ID)
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12), asciigraph.Width(80),
		asciigraph.Caption("energy spectrum")))

	period := analysis.DominantPeriod(series.Energy, meta.Dt)
	if period == 0 {
		fmt.Println("\nno dominant period found")
		return nil
	}
	fmt.Printf("\ndominant period: %.4g s of simulated time\n", period)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cluster, _, err := buildCluster(cfg, args)
	if err != nil {
		return err
	}

	s := sim.New(cluster, cfg)
	if _, err := s.Run(context.Background(), dt, steps); err != nil {
		return err
	}

	scale := svgScale
	if scale == 0 {
		scale = cfg.Distance
	}
	svg := export.ClusterToSVG(cluster, int(cfg.Width), int(cfg.Height), scale)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}
