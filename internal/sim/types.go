// Package sim drives time-ordered queries into the orientation and
// coefficient models: flight conditions derived from the propagated state,
// point-mass trajectory dynamics under aerodynamic force, and the stepping
// loop feeding both.
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is the translational state: inertial position (m) and velocity
// (m/s), flattened for the integrators.
type State []float64

// NewState packs position and velocity vectors.
func NewState(pos, vel r3.Vec) State {
	return State{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z}
}

func (s State) Position() r3.Vec { return r3.Vec{X: s[0], Y: s[1], Z: s[2]} }

func (s State) Velocity() r3.Vec { return r3.Vec{X: s[3], Y: s[4], Z: s[5]} }

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Dynamics produces the state derivative at a stage point. Implementations
// may fail when an underlying model rejects the query; the loop aborts on
// any such error rather than retrying internally.
type Dynamics interface {
	Derivative(x State, t float64) (State, error)
	StateDim() int
}

// Integrator advances the state by one fixed step.
type Integrator interface {
	Step(dyn Dynamics, x State, t, dt float64) (State, error)
}

// Observer is notified once per accepted step.
type Observer interface {
	OnStep(x State, t float64)
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Config holds the loop parameters.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{Dt: 0.1, Duration: 60.0, ValidateState: true}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", c.Duration)
	}
	return nil
}

// Result collects the trajectory and metric values of one run.
type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}
