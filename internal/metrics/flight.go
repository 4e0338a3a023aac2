// Package metrics provides run-level scalar summaries over a trajectory.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/sim"
)

// PeakDynamicPressure tracks the largest dynamic pressure seen over a run.
// It derives the value from the observed state directly, so it does not
// depend on the order of metric and dynamics evaluations within a step.
type PeakDynamicPressure struct {
	name       string
	atmosphere sim.Atmosphere
	shape      sim.Shape
	peak       float64
	peakTime   float64
}

func NewPeakDynamicPressure(atm sim.Atmosphere, shape sim.Shape) *PeakDynamicPressure {
	return &PeakDynamicPressure{name: "peak_dynamic_pressure", atmosphere: atm, shape: shape}
}

func (p *PeakDynamicPressure) Name() string { return p.name }

func (p *PeakDynamicPressure) Observe(x sim.State, t float64) {
	rho := p.atmosphere.Density(p.shape.Altitude(x.Position()))
	v := x.Velocity()
	q := 0.5 * rho * (v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if q > p.peak {
		p.peak = q
		p.peakTime = t
	}
}

func (p *PeakDynamicPressure) Value() float64 { return p.peak }

// PeakTime reports when the maximum occurred.
func (p *PeakDynamicPressure) PeakTime() float64 { return p.peakTime }

func (p *PeakDynamicPressure) Reset() {
	p.peak = 0
	p.peakTime = 0
}

// MinAltitude tracks the lowest altitude reached, the figure of merit for
// skip-entry and aerobraking passes.
type MinAltitude struct {
	name    string
	shape   sim.Shape
	min     float64
	samples int
}

func NewMinAltitude(shape sim.Shape) *MinAltitude {
	return &MinAltitude{name: "min_altitude", shape: shape, min: math.Inf(1)}
}

func (m *MinAltitude) Name() string { return m.name }

func (m *MinAltitude) Observe(x sim.State, t float64) {
	h := m.shape.Altitude(x.Position())
	if h < m.min {
		m.min = h
	}
	m.samples++
}

func (m *MinAltitude) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinAltitude) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// MeanMach averages the Mach number over the observed steps.
type MeanMach struct {
	name         string
	speedOfSound float64
	sum          float64
	samples      int
}

func NewMeanMach(speedOfSound float64) *MeanMach {
	return &MeanMach{name: "mean_mach", speedOfSound: speedOfSound}
}

func (m *MeanMach) Name() string { return m.name }

func (m *MeanMach) Observe(x sim.State, t float64) {
	m.sum += r3.Norm(x.Velocity()) / m.speedOfSound
	m.samples++
}

func (m *MeanMach) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanMach) Reset() {
	m.sum = 0
	m.samples = 0
}
