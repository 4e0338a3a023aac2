package aero

import "fmt"

// NewModel builds a coefficient model from a tagged settings descriptor,
// dispatching first on the declared kind and then on table dimensionality.
// Control-surface increment models are built recursively by the same
// factory. All validation is eager: a settings inconsistency fails here,
// before any simulation step runs.
func NewModel(s *Settings) (Model, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var (
		model Model
		err   error
	)
	switch s.Kind {
	case ConstantCoefficients:
		model = &constantModel{force: s.Constant.Force, moment: s.Constant.Moment}
	case TabulatedCoefficients:
		model, err = newTabulatedModel(s.Tabulated)
		if err != nil {
			return nil, err
		}
	}

	if len(s.ControlSurfaces) != 0 {
		increments := make(map[string]Model, len(s.ControlSurfaces))
		for name, sub := range s.ControlSurfaces {
			inc, err := NewModel(sub)
			if err != nil {
				return nil, fmt.Errorf("control surface %q: %w", name, err)
			}
			increments[name] = inc
		}
		switch m := model.(type) {
		case *constantModel:
			m.increments = increments
		case *tabulatedModel:
			m.increments = increments
		}
	}
	return model, nil
}

func newTabulatedModel(s *TabulatedSettings) (*tabulatedModel, error) {
	n := len(s.Variables)
	if n < MinDimensions || n > MaxDimensions {
		return nil, fmt.Errorf("%w: %d independent variables declared",
			ErrUnsupportedDimensionality, n)
	}
	for _, v := range s.Variables {
		if !v.Known() {
			return nil, fmt.Errorf("aero: unknown independent variable %q", v)
		}
	}

	force, err := MergeTables(s.Force[0], s.Force[1], s.Force[2])
	if err != nil {
		return nil, fmt.Errorf("force coefficients: %w", err)
	}
	// Absent moment tables mean identically zero moments on the force grid.
	moment := zeroLike(force)
	if s.Moment[0] != nil || s.Moment[1] != nil || s.Moment[2] != nil {
		moment, err = MergeTables(s.Moment[0], s.Moment[1], s.Moment[2])
		if err != nil {
			return nil, fmt.Errorf("moment coefficients: %w", err)
		}
	}
	if force.Dimension() != n {
		return nil, fmt.Errorf("%w: %d variable names for %d-dimensional force tables",
			ErrInconsistentIndependentVariables, n, force.Dimension())
	}
	if !sameBreakpoints(force.Breakpoints(), moment.Breakpoints()) {
		return nil, fmt.Errorf("%w: force and moment grids differ",
			ErrInconsistentIndependentVariables)
	}
	return &tabulatedModel{variables: s.Variables, force: force, moment: moment}, nil
}
