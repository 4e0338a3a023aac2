package aero

import (
	"fmt"
	"math"

	"github.com/KevinDehulsters/tudat/internal/ephemerides"
	"github.com/KevinDehulsters/tudat/internal/frames"
)

// TrimSettings configures the bounded root-find for the trim angle of
// attack.
type TrimSettings struct {
	// Bracket is the angle-of-attack search interval in radians. The
	// pitching moment must change sign across it.
	Bracket [2]float64
	// MaxIterations bounds the bisection; the solve never runs unbounded.
	MaxIterations int
	// Tolerance is the bracket width at which the solve is accepted.
	Tolerance float64
}

// DefaultTrimSettings covers attack angles from -30 to +50 degrees, ample
// for winged entry vehicles.
func DefaultTrimSettings() TrimSettings {
	return TrimSettings{
		Bracket:       [2]float64{-math.Pi / 6, 5 * math.Pi / 18},
		MaxIterations: 100,
		Tolerance:     1e-10,
	}
}

// TrimSolver finds the angle of attack zeroing the pitching-moment
// coefficient of a shared coefficient model, with the remaining independent
// variables frozen at their current flight-condition values. It implements
// ephemerides.AngleSource so it can be installed as a model's angle
// supplier, closing the orientation/angle loop with trimmed conditions.
//
// The solve is single-pass per queried time: the frozen variables come from
// the previous step's flight condition, and the result is not iterated to a
// fixed point within one query.
type TrimSolver struct {
	model      Model
	alphaIndex int
	varsAt     func(t float64) ([]float64, error)
	settings   TrimSettings

	// Pitching-moment contribution of the control-surface increments,
	// evaluated once at the fixed per-surface variables.
	surfaceMoment float64

	lastTime  float64
	lastAngle float64
}

// NewTrimSolver builds a solver over a coefficient model that tabulates the
// angle of attack. varsAt supplies the untrimmed independent variable values
// for a given time; the angle-of-attack slot is overwritten during the
// solve. surfaces carries the variable vector for each control-surface
// increment the model owns; their moments enter the trim objective alongside
// the baseline.
func NewTrimSolver(model Model, varsAt func(t float64) ([]float64, error), surfaces map[string][]float64, settings TrimSettings) (*TrimSolver, error) {
	idx := indexOf(model.Variables(), AngleOfAttack)
	if idx < 0 {
		return nil, fmt.Errorf("aero: coefficient model has no angle-of-attack independent variable")
	}
	if settings.MaxIterations <= 0 || settings.Bracket[1] <= settings.Bracket[0] {
		return nil, fmt.Errorf("aero: invalid trim settings (bracket %v, %d iterations)",
			settings.Bracket, settings.MaxIterations)
	}
	incMoment, err := IncrementMoments(model, surfaces)
	if err != nil {
		return nil, err
	}
	return &TrimSolver{
		model:         model,
		alphaIndex:    idx,
		varsAt:        varsAt,
		settings:      settings,
		surfaceMoment: incMoment.Y,
		lastTime:      math.NaN(),
	}, nil
}

// FindTrimAngle bisects the total pitching-moment coefficient, baseline plus
// control-surface increments, over the configured bracket. vars must be a
// full independent-variable sequence; its angle-of-attack entry is ignored
// and overwritten.
func (s *TrimSolver) FindTrimAngle(vars []float64) (float64, error) {
	probe := make([]float64, len(vars))
	copy(probe, vars)
	moment := func(alpha float64) (float64, error) {
		probe[s.alphaIndex] = alpha
		m, err := s.model.MomentCoefficients(probe)
		if err != nil {
			return 0, err
		}
		return m.Y + s.surfaceMoment, nil
	}

	lo, hi := s.settings.Bracket[0], s.settings.Bracket[1]
	flo, err := moment(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := moment(hi)
	if err != nil {
		return 0, err
	}
	switch {
	case flo == 0:
		return lo, nil
	case fhi == 0:
		return hi, nil
	case flo*fhi > 0:
		return 0, fmt.Errorf("%w: no sign change in bracket [%g, %g]",
			ErrTrimNotFound, lo, hi)
	}

	for i := 0; i < s.settings.MaxIterations; i++ {
		mid := 0.5 * (lo + hi)
		fmid, err := moment(mid)
		if err != nil {
			return 0, err
		}
		if fmid == 0 || hi-lo < s.settings.Tolerance {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, fmt.Errorf("%w: iteration budget exhausted in bracket [%g, %g]",
		ErrTrimNotFound, s.settings.Bracket[0], s.settings.Bracket[1])
}

// AnglesAt returns the trimmed aerodynamic angles for time t. The solution
// is cached per time value; a repeated query at the same instant reuses it.
// The cache is written only after a successful solve.
func (s *TrimSolver) AnglesAt(t float64) (frames.AeroAngles, error) {
	if t != s.lastTime {
		vars, err := s.varsAt(t)
		if err != nil {
			return frames.AeroAngles{}, err
		}
		alpha, err := s.FindTrimAngle(vars)
		if err != nil {
			return frames.AeroAngles{}, err
		}
		s.lastAngle = alpha
		s.lastTime = t
	}
	return frames.AeroAngles{AngleOfAttack: s.lastAngle}, nil
}

// ResetCurrentTime invalidates the cached trim solution, forcing a re-solve
// on the next query even at an identical time value.
func (s *TrimSolver) ResetCurrentTime() {
	s.lastTime = math.NaN()
}

// InstallOn registers the solver as the angle source of an angle-driven
// rotational model, completing that model's closure. The solver holds the
// coefficient model only; it never queries the ephemeris back, so the
// registration cannot recurse.
func (s *TrimSolver) InstallOn(e *ephemerides.AeroAngleEphemeris) {
	e.SetAngleSource(s)
}

var _ ephemerides.AngleSource = (*TrimSolver)(nil)
