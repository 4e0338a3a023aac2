package metrics

import (
	"math"

	"github.com/KevinDehulsters/tudat/internal/aero"
	"github.com/KevinDehulsters/tudat/internal/sim"
)

// TrimResidual tracks the largest total pitching-moment magnitude, baseline
// plus control-surface increments, left at the independent variables the
// flight conditions resolved, a health check on the trim closure over a run.
// Samples where the conditions or the model reject the query are skipped; a
// run that never yields a sample reports a NaN value rather than a spurious
// zero.
type TrimResidual struct {
	name       string
	model      aero.Model
	conditions *sim.FlightConditions
	max        float64
	samples    int
}

func NewTrimResidual(model aero.Model, fc *sim.FlightConditions) *TrimResidual {
	return &TrimResidual{name: "trim_residual", model: model, conditions: fc}
}

func (r *TrimResidual) Name() string { return r.name }

func (r *TrimResidual) Observe(x sim.State, t float64) {
	vars, err := r.conditions.IndependentVariables(t)
	if err != nil {
		return
	}
	m, err := r.model.MomentCoefficients(vars)
	if err != nil {
		return
	}
	inc, err := aero.IncrementMoments(r.model, r.conditions.ControlSurfaceVariables())
	if err != nil {
		return
	}
	if residual := math.Abs(m.Y + inc.Y); residual > r.max {
		r.max = residual
	}
	r.samples++
}

func (r *TrimResidual) Value() float64 {
	if r.samples == 0 {
		return math.NaN()
	}
	return r.max
}

func (r *TrimResidual) Reset() {
	r.max = 0
	r.samples = 0
}
