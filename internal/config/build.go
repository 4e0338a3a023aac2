package config

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/KevinDehulsters/tudat/internal/aero"
	"github.com/KevinDehulsters/tudat/internal/sim"
)

// CoefficientSettings translates the scenario's coefficient description
// into factory settings, including nested control-surface increments.
func (c *Config) CoefficientSettings() (*aero.Settings, error) {
	return coefficientSettings(c.Coefficient)
}

func coefficientSettings(cc CoefficientConfig) (*aero.Settings, error) {
	s := &aero.Settings{}
	switch cc.Kind {
	case "constant":
		s.Kind = aero.ConstantCoefficients
		s.Constant = &aero.ConstantSettings{
			Force:  r3.Vec{X: cc.Force[0], Y: cc.Force[1], Z: cc.Force[2]},
			Moment: r3.Vec{X: cc.Moment[0], Y: cc.Moment[1], Z: cc.Moment[2]},
		}
	case "tabulated":
		vars := make([]aero.IndependentVariable, len(cc.Variables))
		for i, v := range cc.Variables {
			vars[i] = aero.IndependentVariable(v)
		}
		tab := &aero.TabulatedSettings{Variables: vars}
		for i := 0; i < 3; i++ {
			var err error
			if tab.Force[i], err = buildTable(cc.ForceTables[i]); err != nil {
				return nil, fmt.Errorf("config: force table %d: %w", i, err)
			}
			if tab.Moment[i], err = buildTable(cc.MomentTables[i]); err != nil {
				return nil, fmt.Errorf("config: moment table %d: %w", i, err)
			}
		}
		s.Kind = aero.TabulatedCoefficients
		s.Tabulated = tab
	default:
		return nil, fmt.Errorf("config: unknown coefficient kind %q", cc.Kind)
	}

	if len(cc.ControlSurfaces) > 0 {
		s.ControlSurfaces = make(map[string]*aero.Settings, len(cc.ControlSurfaces))
		for name, sub := range cc.ControlSurfaces {
			built, err := coefficientSettings(sub)
			if err != nil {
				return nil, fmt.Errorf("config: control surface %q: %w", name, err)
			}
			s.ControlSurfaces[name] = built
		}
	}
	return s, nil
}

func buildTable(tc *TableConfig) (*aero.ScalarTable, error) {
	if tc == nil {
		return nil, nil
	}
	if tc.File != "" {
		data, err := os.ReadFile(tc.File)
		if err != nil {
			return nil, err
		}
		var loaded struct {
			File        string      `yaml:"file"`
			Variables   []string    `yaml:"variables"`
			Breakpoints [][]float64 `yaml:"breakpoints"`
			Values      []float64   `yaml:"values"`
		}
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", tc.File, err)
		}
		if loaded.File != "" {
			return nil, fmt.Errorf("table file %s references another file", tc.File)
		}
		if len(loaded.Variables) != 0 && len(loaded.Variables) != len(loaded.Breakpoints) {
			return nil, fmt.Errorf("table file %s names %d variables for %d breakpoint dimensions",
				tc.File, len(loaded.Variables), len(loaded.Breakpoints))
		}
		return aero.NewScalarTable(loaded.Breakpoints, loaded.Values)
	}
	return aero.NewScalarTable(tc.Breakpoints, tc.Values)
}

// TrimSettings maps the scenario trim block onto solver settings, filling
// unset fields from the defaults.
func (c *Config) TrimSettings() aero.TrimSettings {
	s := aero.DefaultTrimSettings()
	if c.Trim.Bracket != [2]float64{} {
		s.Bracket = c.Trim.Bracket
	}
	if c.Trim.MaxIterations > 0 {
		s.MaxIterations = c.Trim.MaxIterations
	}
	if c.Trim.Tolerance > 0 {
		s.Tolerance = c.Trim.Tolerance
	}
	return s
}

// Atmosphere builds the scenario's exponential atmosphere.
func (c *Config) Atmosphere() sim.ExponentialAtmosphere {
	return sim.ExponentialAtmosphere{
		SurfaceDensity: c.Body.SurfaceDensity,
		ScaleHeight:    c.Body.ScaleHeight,
	}
}

// Shape builds the scenario's spherical central body.
func (c *Config) Shape() sim.SphericalShape {
	return sim.SphericalShape{Radius: c.Body.Radius}
}

// SimVehicle maps the vehicle block onto the simulation vehicle. Scalar
// deflections become single-element variable vectors for the increment
// models.
func (c *Config) SimVehicle() sim.Vehicle {
	v := sim.Vehicle{
		Mass:          c.Vehicle.Mass,
		ReferenceArea: c.Vehicle.ReferenceArea,
		SpeedOfSound:  c.Vehicle.SpeedOfSound,
	}
	if len(c.Vehicle.Deflections) > 0 {
		v.ControlSurface = make(map[string][]float64, len(c.Vehicle.Deflections))
		for name, d := range c.Vehicle.Deflections {
			v.ControlSurface[name] = []float64{d}
		}
	}
	return v
}

// InitialState places the vehicle on the x axis at the configured altitude,
// moving in the xy plane at the configured speed and flight-path angle
// (positive up, in degrees).
func (c *Config) InitialState() sim.State {
	gamma := c.InitState.FlightPathDeg * math.Pi / 180
	r := c.Body.Radius + c.InitState.Altitude
	pos := r3.Vec{X: r}
	vel := r3.Vec{
		X: c.InitState.Speed * math.Sin(gamma),
		Y: c.InitState.Speed * math.Cos(gamma),
	}
	return sim.NewState(pos, vel)
}

// LoopConfig maps the time grid onto the loop configuration.
func (c *Config) LoopConfig() sim.Config {
	return sim.Config{Dt: c.Dt, Duration: c.Duration, ValidateState: true}
}
