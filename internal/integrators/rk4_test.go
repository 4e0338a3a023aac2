package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/KevinDehulsters/tudat/internal/sim"
)

type oscillator struct{}

func (oscillator) StateDim() int { return 2 }
func (oscillator) Derivative(x sim.State, t float64) (sim.State, error) {
	return sim.State{x[1], -x[0]}, nil
}

type failingDynamics struct{ err error }

func (f failingDynamics) StateDim() int { return 2 }
func (f failingDynamics) Derivative(x sim.State, t float64) (sim.State, error) {
	return nil, f.err
}

type timeRecorder struct {
	times []float64
}

func (r *timeRecorder) StateDim() int { return 1 }
func (r *timeRecorder) Derivative(x sim.State, t float64) (sim.State, error) {
	r.times = append(r.times, t)
	return sim.State{0}, nil
}

func TestRK4Oscillator(t *testing.T) {
	integrator := NewRK4()
	x := sim.State{1.0, 0.0}

	dt := 0.01
	steps := int(2 * math.Pi / dt)
	var err error
	for i := 0; i < steps; i++ {
		x, err = integrator.Step(oscillator{}, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	remainder := 2*math.Pi - float64(steps)*dt
	x, err = integrator.Step(oscillator{}, x, float64(steps)*dt, remainder)
	if err != nil {
		t.Fatalf("final step: %v", err)
	}

	if math.Abs(x[0]-1.0) > 1e-8 {
		t.Errorf("position after one period = %v, want 1.0", x[0])
	}
	if math.Abs(x[1]) > 1e-8 {
		t.Errorf("velocity after one period = %v, want 0.0", x[1])
	}
}

func TestRK4FourthOrderConvergence(t *testing.T) {
	integrate := func(dt float64) float64 {
		integrator := NewRK4()
		x := sim.State{1.0, 0.0}
		steps := int(1.0 / dt)
		for i := 0; i < steps; i++ {
			x, _ = integrator.Step(oscillator{}, x, float64(i)*dt, dt)
		}
		return math.Abs(x[0] - math.Cos(1.0))
	}

	errCoarse := integrate(0.02)
	errFine := integrate(0.01)

	// Halving dt should shrink the error by roughly 2^4.
	ratio := errCoarse / errFine
	if ratio < 12 || ratio > 20 {
		t.Errorf("error ratio for halved step = %v, want ~16", ratio)
	}
}

func TestRK4StageTimes(t *testing.T) {
	rec := &timeRecorder{}
	integrator := NewRK4()
	if _, err := integrator.Step(rec, sim.State{0}, 2.0, 0.5); err != nil {
		t.Fatal(err)
	}

	want := []float64{2.0, 2.25, 2.25, 2.5}
	if len(rec.times) != len(want) {
		t.Fatalf("got %d stage evaluations, want %d", len(rec.times), len(want))
	}
	for i, w := range want {
		if rec.times[i] != w {
			t.Errorf("stage %d evaluated at t=%v, want %v", i, rec.times[i], w)
		}
	}
}

func TestRK4PropagatesError(t *testing.T) {
	sentinel := errors.New("model rejected query")
	integrator := NewRK4()
	_, err := integrator.Step(failingDynamics{err: sentinel}, sim.State{0, 0}, 0, 0.1)
	if !errors.Is(err, sentinel) {
		t.Errorf("got %v, want the dynamics error", err)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	integrator := NewEuler()
	x := sim.State{1.0, 0.0}
	dt := 1e-4
	steps := int(1.0 / dt)
	for i := 0; i < steps; i++ {
		var err error
		x, err = integrator.Step(oscillator{}, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatal(err)
		}
	}
	if math.Abs(x[0]-math.Cos(1.0)) > 1e-3 {
		t.Errorf("euler position = %v, want %v", x[0], math.Cos(1.0))
	}
}
