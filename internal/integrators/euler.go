// Package integrators provides fixed-step schemes over the sim state.
package integrators

import "github.com/KevinDehulsters/tudat/internal/sim"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn sim.Dynamics, x sim.State, t, dt float64) (sim.State, error) {
	dx, err := dyn.Derivative(x, t)
	if err != nil {
		return nil, err
	}
	result := make(sim.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result, nil
}
