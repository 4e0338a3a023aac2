package aero

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Model evaluates aerodynamic force and moment coefficients as a function of
// an ordered sequence of independent variable values. Models are immutable
// after construction and shared read-only between the flight-condition
// consumer and the trim solver. Increment sub-models are owned by the model
// but summed into the baseline by the consumer, never internally.
type Model interface {
	Variables() []IndependentVariable
	Dimension() int
	ForceCoefficients(vars []float64) (r3.Vec, error)
	MomentCoefficients(vars []float64) (r3.Vec, error)
	Increments() map[string]Model
}

// incrementSet carries the optional named control-surface increment models.
type incrementSet struct {
	increments map[string]Model
}

func (s incrementSet) Increments() map[string]Model { return s.increments }

// constantModel is the zero-dimensional variant: fixed coefficients,
// evaluated with an empty variable sequence.
type constantModel struct {
	incrementSet
	force  r3.Vec
	moment r3.Vec
}

func (m *constantModel) Variables() []IndependentVariable { return nil }

func (m *constantModel) Dimension() int { return 0 }

func (m *constantModel) ForceCoefficients(vars []float64) (r3.Vec, error) {
	if len(vars) != 0 {
		return r3.Vec{}, fmt.Errorf("%w: got %d values for a constant model",
			ErrDimensionalityMismatch, len(vars))
	}
	return m.force, nil
}

func (m *constantModel) MomentCoefficients(vars []float64) (r3.Vec, error) {
	if len(vars) != 0 {
		return r3.Vec{}, fmt.Errorf("%w: got %d values for a constant model",
			ErrDimensionalityMismatch, len(vars))
	}
	return m.moment, nil
}

// tabulatedModel interpolates merged force and moment tables over a shared
// independent-variable grid.
type tabulatedModel struct {
	incrementSet
	variables []IndependentVariable
	force     *VectorTable
	moment    *VectorTable
}

func (m *tabulatedModel) Variables() []IndependentVariable { return m.variables }

func (m *tabulatedModel) Dimension() int { return len(m.variables) }

func (m *tabulatedModel) ForceCoefficients(vars []float64) (r3.Vec, error) {
	return m.force.Interpolate(vars)
}

func (m *tabulatedModel) MomentCoefficients(vars []float64) (r3.Vec, error) {
	return m.moment.Interpolate(vars)
}

// IncrementMoments sums the moment coefficients of a model's named
// control-surface increments, each evaluated at the variable vector supplied
// for that surface. A surface without supplied variables is an error.
func IncrementMoments(m Model, surfaces map[string][]float64) (r3.Vec, error) {
	var out r3.Vec
	for name, inc := range m.Increments() {
		vars, ok := surfaces[name]
		if !ok {
			return r3.Vec{}, fmt.Errorf("aero: no variables supplied for control surface %q", name)
		}
		c, err := inc.MomentCoefficients(vars)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("aero: control surface %q: %w", name, err)
		}
		out = r3.Add(out, c)
	}
	return out, nil
}
