package ephemerides

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/KevinDehulsters/tudat/internal/frames"
)

// AngleSource supplies aerodynamic angles as a function of time. It is the
// late-bound half of the orientation/angle circular dependency: ephemeris,
// trim solver or external guidance all register through this interface.
// ResetCurrentTime must drop any per-time cached solution the source holds.
type AngleSource interface {
	AnglesAt(t float64) (frames.AeroAngles, error)
	ResetCurrentTime()
}

// AngleFunc adapts a plain closure to an AngleSource with no cached state.
type AngleFunc func(t float64) (frames.AeroAngles, error)

func (f AngleFunc) AnglesAt(t float64) (frames.AeroAngles, error) { return f(t) }

func (AngleFunc) ResetCurrentTime() {}

// AeroAngleEphemeris derives the body orientation from aerodynamic angles.
// The angles may themselves depend on the vehicle's trajectory, which in
// turn depends on this orientation; the cycle is closed at runtime by
// registering an angle source. Until then the model is unresolved and every
// query fails with ErrClosureNotReady.
//
// The model memoizes its state per time value: queries repeated at the same
// instant, as happens across the stages of one integration step, invoke the
// angle source exactly once. A registered source must never query this model
// back from inside AnglesAt.
type AeroAngleEphemeris struct {
	FramePair
	extCollapse

	calc   *frames.AngleCalculator
	source AngleSource

	closureComplete bool
	lastTime        float64
	currentRotation quat.Number
	currentAngles   frames.AeroAngles
}

// NewAeroAngleEphemeris builds an unresolved angle-driven ephemeris around
// an angle calculator. SetAngleSource must be called before the first query.
func NewAeroAngleEphemeris(calc *frames.AngleCalculator, base, target string) *AeroAngleEphemeris {
	e := &AeroAngleEphemeris{
		FramePair: FramePair{Base: base, Target: target},
		calc:      calc,
		lastTime:  math.NaN(),
	}
	e.extCollapse.m = e
	return e
}

// SetAngleSource registers or replaces the angle supplier and completes the
// closure. The last registration wins; replacing an earlier source is not an
// error. The cached time is cleared so the next query reflects the new
// source even at a previously seen instant.
func (e *AeroAngleEphemeris) SetAngleSource(src AngleSource) {
	e.source = src
	e.closureComplete = src != nil
	e.lastTime = math.NaN()
}

// Update recomputes the cached orientation for time t. It is a no-op when t
// equals the cached time. The cache is written only after both the angle
// source and the angle calculator have succeeded.
func (e *AeroAngleEphemeris) Update(t float64) error {
	if !e.closureComplete {
		return ErrClosureNotReady
	}
	if t == e.lastTime {
		return nil
	}
	angles, err := e.source.AnglesAt(t)
	if err != nil {
		return err
	}
	rot, err := e.calc.BodyToInertial(t, angles)
	if err != nil {
		return err
	}
	e.currentAngles = angles
	e.currentRotation = frames.MatToQuat(rot)
	e.lastTime = t
	return nil
}

// ResetCurrentTime clears the cached time, forcing recomputation on the next
// query even at an identical time value. It must be called when a non-time
// input changed upstream, e.g. after the vehicle was re-trimmed or a
// rejected integrator step is retried with different inputs. The reset is
// forwarded to the angle source so its own per-time cache is dropped too.
func (e *AeroAngleEphemeris) ResetCurrentTime() {
	e.lastTime = math.NaN()
	if e.source != nil {
		e.source.ResetCurrentTime()
	}
}

// Angles returns the aerodynamic angles used for the orientation at t.
func (e *AeroAngleEphemeris) Angles(t float64) (frames.AeroAngles, error) {
	if err := e.Update(t); err != nil {
		return frames.AeroAngles{}, err
	}
	return e.currentAngles, nil
}

func (e *AeroAngleEphemeris) RotationToBase(t float64) (quat.Number, error) {
	if err := e.Update(t); err != nil {
		return quat.Number{}, err
	}
	return e.currentRotation, nil
}

func (e *AeroAngleEphemeris) RotationToTarget(t float64) (quat.Number, error) {
	rot, err := e.RotationToBase(t)
	if err != nil {
		return quat.Number{}, err
	}
	return quat.Conj(rot), nil
}

// The angle-to-rotation map has no closed-form time derivative, so
// derivative and full-kinematics queries are unsupported rather than
// answered with a placeholder.

func (e *AeroAngleEphemeris) DerivativeToBase(t float64) (*mat.Dense, error) {
	return nil, ErrUnsupportedOperation
}

func (e *AeroAngleEphemeris) DerivativeToTarget(t float64) (*mat.Dense, error) {
	return nil, ErrUnsupportedOperation
}

func (e *AeroAngleEphemeris) Kinematics(t float64) (AngularState, error) {
	return AngularState{}, ErrUnsupportedOperation
}

var _ Model = (*AeroAngleEphemeris)(nil)
var _ Model = (*SpinModel)(nil)
