package config

var Presets = map[string]*Config{
	"shallow-entry": {
		Name: "shallow-entry", Integrator: "rk4", Dt: 0.5, Duration: 600,
		Body: BodyConfig{
			Radius: DefaultBodyRadius, GravityParam: DefaultGravityParam,
			SurfaceDensity: 1.225, ScaleHeight: DefaultScaleHeight,
		},
		Vehicle:     VehicleConfig{Mass: 5000, ReferenceArea: 110, SpeedOfSound: 300},
		Coefficient: CoefficientConfig{Kind: "constant", Force: [3]float64{-1.2, 0, 0}},
		InitState:   InitStateConfig{Altitude: 120e3, Speed: 7800, FlightPathDeg: -1.0},
	},
	"steep-entry": {
		Name: "steep-entry", Integrator: "rk4", Dt: 0.2, Duration: 300,
		Body: BodyConfig{
			Radius: DefaultBodyRadius, GravityParam: DefaultGravityParam,
			SurfaceDensity: 1.225, ScaleHeight: DefaultScaleHeight,
		},
		Vehicle:     VehicleConfig{Mass: 5000, ReferenceArea: 110, SpeedOfSound: 300},
		Coefficient: CoefficientConfig{Kind: "constant", Force: [3]float64{-1.5, 0, 0}},
		InitState:   InitStateConfig{Altitude: 100e3, Speed: 7600, FlightPathDeg: -6.0},
	},
	"trimmed-glider": {
		Name: "trimmed-glider", Integrator: "rk4", Dt: 0.5, Duration: 600,
		Body: BodyConfig{
			Radius: DefaultBodyRadius, GravityParam: DefaultGravityParam,
			SurfaceDensity: 1.225, ScaleHeight: DefaultScaleHeight,
		},
		Vehicle: VehicleConfig{Mass: 5000, ReferenceArea: 110, SpeedOfSound: 300},
		Coefficient: CoefficientConfig{
			Kind:      "tabulated",
			Variables: []string{"angle_of_attack"},
			ForceTables: [3]*TableConfig{
				{Breakpoints: [][]float64{{-1, 1}}, Values: []float64{-1.3, -1.3}},
				nil, nil,
			},
			MomentTables: [3]*TableConfig{
				nil,
				{Breakpoints: [][]float64{{-1, 1}}, Values: []float64{-1.15, 0.85}},
				nil,
			},
		},
		Trim:      TrimConfig{Enabled: true},
		InitState: InitStateConfig{Altitude: 80e3, Speed: 6500, FlightPathDeg: -2.0},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
