package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/astrotime"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/session"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/store"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	verbose    bool
	configFile string
	integrator string
	speed      float64
	duration   float64
	frameRate  int
	stride     int
	outFile    string
	longitude  float64
	atTime     string
	timeStep   float64
	epsilon    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "n-body gravity simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunApp(frameRate)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario headless and report conservation metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "wall-clock seconds to simulate")
	runCmd.Flags().IntVar(&stride, "stride", 1, "keep every n-th frame in the output")
	runCmd.Flags().StringVarP(&outFile, "out", "o", "", "write frames to a .json or .csv file")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator...]",
		Short: "run one scenario under several integrators",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	compareCmd.Flags().Float64Var(&speed, "speed", 1, "speed multiplier")
	compareCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "wall-clock seconds to simulate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tG\tINTEGRATOR")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				ids := make([]string, len(cfg.Bodies))
				for i, b := range cfg.Bodies {
					ids[i] = fmt.Sprintf("%s(%g)", b.ID, b.Mass)
				}
				fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", name, strings.Join(ids, " "), cfg.G, cfg.Integrator)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print a preset as yaml, to start a scenario file from",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	siderealCmd := &cobra.Command{
		Use:   "sidereal",
		Short: "julian date and local mean sidereal time",
		Args:  cobra.NoArgs,
		RunE:  printSidereal,
	}
	siderealCmd.Flags().Float64Var(&longitude, "lon", 0, "observer longitude in degrees, east positive")
	siderealCmd.Flags().StringVar(&atTime, "at", "", "UTC instant (RFC 3339), default now")

	chaosCmd := &cobra.Command{
		Use:   "chaos [preset]",
		Short: "estimate the largest lyapunov exponent of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  estimateChaos,
	}
	chaosCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides the preset")
	chaosCmd.Flags().StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	chaosCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated seconds")
	chaosCmd.Flags().Float64Var(&timeStep, "dt", 0.001, "fixed step")
	chaosCmd.Flags().Float64Var(&epsilon, "epsilon", 1e-8, "initial perturbation")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, presetsCmd, configCmd, siderealCmd, chaosCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides the preset")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().Float64Var(&speed, "speed", 1, "speed multiplier")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadScenario resolves preset, then config file, then explicitly set flags.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "binary"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		base := filepath.Base(configFile)
		cfg, name = loaded, strings.TrimSuffix(base, filepath.Ext(base))
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("fps") {
		cfg.Run.FPS = frameRate
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	slog.Debug("scenario loaded", "name", name, "bodies", len(cfg.Bodies), "integrator", cfg.Integrator,
		"g", cfg.G, "speed", cfg.Speed)
	return cfg, name, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	log := slog.Default().With("component", "run", "scenario", name)

	sess, err := session.New(cfg.Session())
	if err != nil {
		return err
	}
	runner := sim.New(sess)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s (%s, %d bodies)...\n", name, cfg.Integrator, len(cfg.Bodies))
	start := time.Now()
	result, runErr := runner.Run(ctx, sim.Config{FPS: cfg.Run.FPS, Duration: cfg.Run.Duration, Stride: stride})
	if result == nil {
		return runErr
	}
	log.Debug("run finished", "ticks", result.Ticks, "elapsed", time.Since(start))

	printResult(result)

	if outFile != "" {
		if err := store.WriteFile(outFile, name, result); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		log.Info("frames written", "path", outFile, "frames", len(result.Frames))
	}

	var stepErr *session.StepError
	if errors.As(runErr, &stepErr) {
		log.Error("simulation halted", "tick", stepErr.Tick, "t", stepErr.SimTime, "err", stepErr.Err)
	}
	return runErr
}

func printResult(result *sim.Result) {
	fmt.Printf("ticks: %d  sim time: %.3f\n", result.Ticks, result.SimTime)

	if len(result.Frames) > 0 {
		last := result.Frames[len(result.Frames)-1]
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "BODY\tMASS\tX\tY\tVX\tVY")
		for _, b := range last.Bodies {
			fmt.Fprintf(w, "%s\t%g\t%.3f\t%.3f\t%.3f\t%.3f\n", b.ID, b.Mass, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
		}
		w.Flush()

		d := last.Diagnostics
		orbit := "unbound"
		if d.Bound() {
			orbit = "bound"
		}
		fmt.Printf("\nseparation %.4f  specific energy %.4f (%s)  specific angular momentum %.4f\n",
			d.Separation, d.SpecificEnergy, orbit, d.SpecificAngularMomentum)
		if period, err := analysis.DominantPeriod(result.Separations(), result.FrameInterval()); err == nil {
			fmt.Printf("separation period ~%.3f\n", period)
		}
	}

	fmt.Println("\nmetrics:")
	for _, name := range metrics.Names(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}

	if energies := result.Energies(); len(energies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energies, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("specific energy")))
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	sess, err := session.New(cfg.Session())
	if err != nil {
		return err
	}
	return viz.Run(sess, name, cfg.Run.FPS)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := integrators.Names()
	if len(args) > 1 {
		names = args[1:]
	}
	cfg, scenario, err := loadScenario(cmd, args[:min(len(args), 1)])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sim.Compare(ctx, cfg.Session(), names, sim.Config{FPS: cfg.Run.FPS, Duration: cfg.Run.Duration, Stride: cfg.Run.FPS})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %.1fs at %d fps\n\n", scenario, cfg.Run.Duration, cfg.Run.FPS)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY DRIFT\tANG. MOM. DRIFT\tTOTAL E DRIFT\tMIN SEPARATION\tSTATUS")
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "halted"
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.3e\t%.4f\t%s\n", r.Integrator,
			r.Metrics["energy_drift"], r.Metrics["angular_momentum_drift"],
			r.Metrics["total_energy_drift"], r.Metrics["min_separation"], status)
	}
	return w.Flush()
}

func estimateChaos(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	pc, bodies, err := cfg.Physics()
	if err != nil {
		return err
	}

	start := time.Now()
	lambda, err := analysis.LyapunovExponent(pc, bodies, timeStep, cfg.Run.Duration, epsilon)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	slog.Debug("lyapunov estimate", "scenario", name, "dt", timeStep, "elapsed", time.Since(start))

	verdict := "regular"
	if lambda > 0.5 {
		verdict = "chaotic"
	}
	fmt.Printf("%s: lambda = %.4f over %.2fs (%s)\n", name, lambda, cfg.Run.Duration, verdict)
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	name := "binary"
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		slog.Info("config written", "path", outFile, "preset", name)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func printSidereal(cmd *cobra.Command, args []string) error {
	at := time.Now().UTC()
	if atTime != "" {
		parsed, err := time.Parse(time.RFC3339, atTime)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		at = parsed.UTC()
	}

	gmst := astrotime.GreenwichMeanSidereal(at)
	lmst := astrotime.LocalMeanSidereal(at, longitude)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "UTC\t%s\n", at.Format(time.RFC3339))
	fmt.Fprintf(w, "Julian date\t%.6f\n", astrotime.JulianDateOf(at))
	fmt.Fprintf(w, "GMST\t%s\t%.6f°\n", astrotime.FormatHMS(astrotime.DegreesToDuration(gmst)), gmst)
	fmt.Fprintf(w, "LMST (%.4f°)\t%s\t%.6f°\n", longitude, astrotime.FormatHMS(astrotime.DegreesToDuration(lmst)), lmst)
	return w.Flush()
}
