package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/KevinDehulsters/tudat/internal/aero"
	"github.com/KevinDehulsters/tudat/internal/config"
	"github.com/KevinDehulsters/tudat/internal/ephemerides"
	"github.com/KevinDehulsters/tudat/internal/frames"
	"github.com/KevinDehulsters/tudat/internal/integrators"
	"github.com/KevinDehulsters/tudat/internal/metrics"
	"github.com/KevinDehulsters/tudat/internal/sim"
	"github.com/KevinDehulsters/tudat/internal/viz"
)

var (
	configFile string
	preset     string
	live       bool
	dt         float64
	duration   float64
	gammaMin   float64
	gammaMax   float64
	sweepCount int
	machMin    float64
	machMax    float64
	machPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aerosim",
		Short: "atmospheric flight simulation with trimmed aerodynamic orientation",
	}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	runCmd.Flags().BoolVar(&live, "live", false, "live terminal view")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "override timestep")
	runCmd.Flags().Float64Var(&duration, "time", 0, "override duration")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a scenario over a range of flight-path angles",
		RunE:  sweepScenario,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	sweepCmd.Flags().Float64Var(&gammaMin, "gamma-min", -6, "shallowest flight-path angle [deg]")
	sweepCmd.Flags().Float64Var(&gammaMax, "gamma-max", -1, "steepest flight-path angle [deg]")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 6, "number of cases")

	trimCmd := &cobra.Command{
		Use:   "trim",
		Short: "sweep the trim angle of attack over a Mach range",
		RunE:  solveTrim,
	}
	trimCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	trimCmd.Flags().StringVar(&preset, "preset", "trimmed-glider", "use preset scenario")
	trimCmd.Flags().Float64Var(&machMin, "mach-min", 2, "lowest Mach number")
	trimCmd.Flags().Float64Var(&machMax, "mach-max", 20, "highest Mach number")
	trimCmd.Flags().IntVar(&machPoints, "points", 10, "number of sweep points")

	evalCmd := &cobra.Command{
		Use:   "eval [var=value ...]",
		Short: "evaluate the coefficient model at given independent variables",
		RunE:  evalCoefficients,
	}
	evalCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	evalCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, trimCmd, evalCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// buildScenario assembles the full chain: coefficient model, angle-driven
// ephemeris whose trajectory frame follows the propagated state, trim
// solver or fixed angles as its source, flight conditions and dynamics.
func buildScenario(cfg *config.Config) (*sim.Loop, *sim.FlightConditions, aero.Model, error) {
	settings, err := cfg.CoefficientSettings()
	if err != nil {
		return nil, nil, nil, err
	}
	model, err := aero.NewModel(settings)
	if err != nil {
		return nil, nil, nil, err
	}

	var fc *sim.FlightConditions
	calc := frames.NewAngleCalculator(func(t float64) *mat.Dense {
		if fc == nil {
			return nil
		}
		return fc.TrajectorySupplier()(t)
	})
	eph := ephemerides.NewAeroAngleEphemeris(calc, "J2000", "VehicleFixed")

	vehicle := cfg.SimVehicle()
	fc, err = sim.NewFlightConditions(cfg.Atmosphere(), cfg.Shape(), vehicle, model, eph)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.Trim.Enabled {
		solver, err := aero.NewTrimSolver(model, fc.IndependentVariables, vehicle.ControlSurface, cfg.TrimSettings())
		if err != nil {
			return nil, nil, nil, err
		}
		solver.InstallOn(eph)
	} else {
		angles := frames.AeroAngles{
			AngleOfAttack: cfg.InitState.AngleOfAttack,
			Sideslip:      cfg.InitState.SideslipAngle,
			Bank:          cfg.InitState.BankAngle,
		}
		eph.SetAngleSource(ephemerides.AngleFunc(func(t float64) (frames.AeroAngles, error) {
			return angles, nil
		}))
	}

	dyn := sim.NewPointMass(cfg.Body.GravityParam, fc)

	var integrator sim.Integrator
	switch cfg.Integrator {
	case "euler":
		integrator = integrators.NewEuler()
	case "rk4", "":
		integrator = integrators.NewRK4()
	default:
		return nil, nil, nil, fmt.Errorf("unknown integrator %q", cfg.Integrator)
	}

	return sim.NewLoop(dyn, integrator), fc, model, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}

	loop, fc, model, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	shape := cfg.Shape()
	loop.AddMetric(metrics.NewPeakDynamicPressure(cfg.Atmosphere(), shape))
	loop.AddMetric(metrics.NewMinAltitude(shape))
	loop.AddMetric(metrics.NewMeanMach(cfg.Vehicle.SpeedOfSound))
	if cfg.Trim.Enabled {
		loop.AddMetric(metrics.NewTrimResidual(model, fc))
	}

	if live {
		return runLive(cfg, loop, shape)
	}

	result, err := loop.Run(context.Background(), cfg.InitialState(), cfg.LoopConfig())
	if err != nil {
		return err
	}
	fmt.Print(viz.TrajectoryReport(result, shape))
	return nil
}

func runLive(cfg *config.Config, loop *sim.Loop, shape sim.Shape) error {
	feed := viz.NewLiveFeed(shape, cfg.Vehicle.SpeedOfSound)
	loop.AddObserver(feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := loop.Run(ctx, cfg.InitialState(), cfg.LoopConfig())
		feed.Close()
		errCh <- err
	}()

	program := tea.NewProgram(viz.NewLiveModel(feed, cfg.Name))
	if _, err := program.Run(); err != nil {
		return err
	}
	// Quitting the view ends the run; a cancelled loop is not a failure.
	cancel()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sweepScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sweepCount < 2 {
		return fmt.Errorf("sweep needs at least 2 cases, got %d", sweepCount)
	}

	gammas := make([]float64, sweepCount)
	x0s := make([]sim.State, sweepCount)
	for i := range x0s {
		frac := float64(i) / float64(sweepCount-1)
		gammas[i] = gammaMin + frac*(gammaMax-gammaMin)
		caseCfg := *cfg
		caseCfg.InitState.FlightPathDeg = gammas[i]
		x0s[i] = caseCfg.InitialState()
	}

	sweep := sim.NewSweep(func() (*sim.Loop, error) {
		loop, _, _, err := buildScenario(cfg)
		return loop, err
	})
	results, err := sweep.Run(context.Background(), x0s, cfg.LoopConfig())
	if err != nil {
		return err
	}

	shape := cfg.Shape()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GAMMA [deg]\tFINAL ALT [km]\tFINAL SPEED [m/s]")
	for i, result := range results {
		final := result.States[len(result.States)-1]
		v := final.Velocity()
		fmt.Fprintf(w, "%.2f\t%.1f\t%.0f\n",
			gammas[i],
			shape.Altitude(final.Position())/1000,
			math.Sqrt(v.X*v.X+v.Y*v.Y+v.Z*v.Z))
	}
	return w.Flush()
}

func solveTrim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, err := cfg.CoefficientSettings()
	if err != nil {
		return err
	}
	model, err := aero.NewModel(settings)
	if err != nil {
		return err
	}

	vars := make([]float64, model.Dimension())
	solver, err := aero.NewTrimSolver(model, func(t float64) ([]float64, error) {
		return vars, nil
	}, cfg.SimVehicle().ControlSurface, cfg.TrimSettings())
	if err != nil {
		return err
	}

	machIndex := -1
	for i, name := range model.Variables() {
		if name == aero.MachNumber {
			machIndex = i
		}
	}

	// Without a Mach dependency the trim angle is a single number.
	if machIndex < 0 {
		alpha, err := solver.FindTrimAngle(vars)
		if err != nil {
			return err
		}
		fmt.Printf("trim angle of attack: %.6f rad (%.3f deg)\n", alpha, alpha*180/math.Pi)
		return nil
	}

	if machPoints < 2 {
		return fmt.Errorf("trim sweep needs at least 2 points, got %d", machPoints)
	}
	alphas := make([]float64, 0, machPoints)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MACH\tTRIM ALPHA [deg]")
	for i := 0; i < machPoints; i++ {
		mach := machMin + float64(i)/float64(machPoints-1)*(machMax-machMin)
		vars[machIndex] = mach
		alpha, err := solver.FindTrimAngle(vars)
		if err != nil {
			return fmt.Errorf("mach %.2f: %w", mach, err)
		}
		alphas = append(alphas, alpha*180/math.Pi)
		fmt.Fprintf(w, "%.2f\t%.3f\n", mach, alpha*180/math.Pi)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(viz.TrimSweepChart(alphas))
	return nil
}

// assignVariables turns var=value arguments into the model's ordered
// variable vector. Unmentioned variables stay zero; a name the model does
// not tabulate is an error, so a misspelled variable does not silently
// evaluate at the wrong point.
func assignVariables(model aero.Model, args []string) ([]float64, error) {
	given := make(map[aero.IndependentVariable]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("bad variable assignment %q, want var=value", arg)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value in %q: %w", arg, err)
		}
		given[aero.IndependentVariable(name)] = value
	}

	vars := make([]float64, model.Dimension())
	for i, name := range model.Variables() {
		if v, ok := given[name]; ok {
			vars[i] = v
			delete(given, name)
		}
	}
	if len(given) != 0 {
		unknown := make([]string, 0, len(given))
		for name := range given {
			unknown = append(unknown, string(name))
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("model does not tabulate %s (it has %v)",
			strings.Join(unknown, ", "), model.Variables())
	}
	return vars, nil
}

func evalCoefficients(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, err := cfg.CoefficientSettings()
	if err != nil {
		return err
	}
	model, err := aero.NewModel(settings)
	if err != nil {
		return err
	}

	vars, err := assignVariables(model, args)
	if err != nil {
		return err
	}

	force, err := model.ForceCoefficients(vars)
	if err != nil {
		return err
	}
	moment, err := model.MomentCoefficients(vars)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "CD\tCS\tCL\tCl\tCm\tCn\n")
	fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
		-force.X, force.Y, -force.Z, moment.X, moment.Y, moment.Z)
	return w.Flush()
}
