package sim

import (
	"context"
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/aero"
)

func TestSweepRunsAllCases(t *testing.T) {
	// The coefficient model is stateless and shared; everything stateful is
	// built per factory call.
	model := trimmableModel(t, 0.1)
	atm := ExponentialAtmosphere{SurfaceDensity: 1.2, ScaleHeight: 8000}
	shape := SphericalShape{Radius: earthRadius}

	sweep := NewSweep(func() (*Loop, error) {
		var fc *FlightConditions
		eph := newDeferredEphemeris(func() *FlightConditions { return fc })
		fc, err := NewFlightConditions(atm, shape, testVehicle(), model, eph)
		if err != nil {
			return nil, err
		}
		solver, err := aero.NewTrimSolver(model, fc.IndependentVariables, nil, aero.DefaultTrimSettings())
		if err != nil {
			return nil, err
		}
		solver.InstallOn(eph)
		return NewLoop(NewPointMass(earthMu, fc), eulerStep{}), nil
	})

	x0s := []State{
		NewState(r3.Vec{X: earthRadius + 120e3}, r3.Vec{Y: 7800}),
		NewState(r3.Vec{X: earthRadius + 110e3}, r3.Vec{Y: 7700, X: -100}),
		NewState(r3.Vec{X: earthRadius + 100e3}, r3.Vec{Y: 7600, X: -300}),
	}

	results, err := sweep.Run(context.Background(),
		x0s, Config{Dt: 0.5, Duration: 10, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r == nil || r.StepsTaken != 20 {
			t.Errorf("case %d: unexpected result %+v", i, r)
		}
		if !r.States[0].Equal(x0s[i]) {
			t.Errorf("case %d: result does not start at its own initial state", i)
		}
	}
}

func TestSweepFactoryError(t *testing.T) {
	sentinel := errors.New("wiring failed")
	sweep := NewSweep(func() (*Loop, error) { return nil, sentinel })

	x0s := []State{NewState(r3.Vec{X: earthRadius + 120e3}, r3.Vec{Y: 7800})}
	if _, err := sweep.Run(context.Background(), x0s, DefaultConfig()); !errors.Is(err, sentinel) {
		t.Errorf("got %v, want factory error", err)
	}
}
