// Package config loads and saves scenario files. A scenario fully
// describes one run: vehicle, environment, coefficient model, trim
// settings, initial state and loop parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt           = 0.1
	DefaultDuration     = 300.0
	DefaultScaleHeight  = 8000.0
	DefaultBodyRadius   = 6371e3
	DefaultGravityParam = 3.986004418e14
)

type Config struct {
	Name        string            `yaml:"name"`
	Integrator  string            `yaml:"integrator"`
	Dt          float64           `yaml:"dt"`
	Duration    float64           `yaml:"duration"`
	Body        BodyConfig        `yaml:"body"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Coefficient CoefficientConfig `yaml:"coefficients"`
	Trim        TrimConfig        `yaml:"trim"`
	InitState   InitStateConfig   `yaml:"init_state"`
}

type BodyConfig struct {
	Radius         float64 `yaml:"radius"`
	GravityParam   float64 `yaml:"gravity_param"`
	SurfaceDensity float64 `yaml:"surface_density"`
	ScaleHeight    float64 `yaml:"scale_height"`
}

type VehicleConfig struct {
	Mass          float64            `yaml:"mass"`
	ReferenceArea float64            `yaml:"reference_area"`
	SpeedOfSound  float64            `yaml:"speed_of_sound"`
	Deflections   map[string]float64 `yaml:"deflections"`
}

// CoefficientConfig describes the coefficient model. Kind selects between a
// constant set and tabulated per-axis tables; control-surface increments
// nest recursively.
type CoefficientConfig struct {
	Kind            string                       `yaml:"kind"`
	Force           [3]float64                   `yaml:"force"`
	Moment          [3]float64                   `yaml:"moment"`
	Variables       []string                     `yaml:"variables"`
	ForceTables     [3]*TableConfig              `yaml:"force_tables"`
	MomentTables    [3]*TableConfig              `yaml:"moment_tables"`
	ControlSurfaces map[string]CoefficientConfig `yaml:"control_surfaces"`
}

// TableConfig is one scalar coefficient table: breakpoint lists per
// dimension and the values in row-major order. Instead of inline data a
// table may name a separate YAML file carrying the same two fields.
type TableConfig struct {
	File        string      `yaml:"file,omitempty"`
	Breakpoints [][]float64 `yaml:"breakpoints,omitempty"`
	Values      []float64   `yaml:"values,omitempty"`
}

type TrimConfig struct {
	Enabled       bool       `yaml:"enabled"`
	Bracket       [2]float64 `yaml:"bracket"`
	MaxIterations int        `yaml:"max_iterations"`
	Tolerance     float64    `yaml:"tolerance"`
}

type InitStateConfig struct {
	Altitude      float64 `yaml:"altitude"`
	Speed         float64 `yaml:"speed"`
	FlightPathDeg float64 `yaml:"flight_path_deg"`
	AngleOfAttack float64 `yaml:"angle_of_attack"`
	SideslipAngle float64 `yaml:"sideslip_angle"`
	BankAngle     float64 `yaml:"bank_angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "entry",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Body: BodyConfig{
			Radius:         DefaultBodyRadius,
			GravityParam:   DefaultGravityParam,
			SurfaceDensity: 1.225,
			ScaleHeight:    DefaultScaleHeight,
		},
		Vehicle: VehicleConfig{
			Mass:          5000,
			ReferenceArea: 110,
			SpeedOfSound:  300,
		},
		Coefficient: CoefficientConfig{
			Kind:  "constant",
			Force: [3]float64{-1.2, 0, 0},
		},
		InitState: InitStateConfig{
			Altitude:      120e3,
			Speed:         7800,
			FlightPathDeg: -1.5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
