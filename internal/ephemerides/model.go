// Package ephemerides provides time-parameterized orientation models between
// named reference frames. Models answer queries in plain float64 seconds and,
// through separate entry points, in the extended high-precision time
// representation used for long-duration propagation. The two entry point
// families are resolved at the call site; no model inspects the runtime type
// of a time value.
package ephemerides

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/frames"
	"github.com/KevinDehulsters/tudat/internal/simtime"
)

// AngularState is the full rotational state at one instant. The angular
// velocity always satisfies the kinematic identity of package frames with
// respect to the other two fields.
type AngularState struct {
	RotationToTarget      quat.Number
	DerivativeToTarget    *mat.Dense
	AngularVelocityInBase r3.Vec
}

// Model is a provider of the rotation between a base and a target frame as
// a function of time. RotationToTarget(t) must equal the inverse of
// RotationToBase(t) for every t; implementations either derive one from the
// other or guarantee the identity by construction.
type Model interface {
	BaseFrame() string
	TargetFrame() string

	RotationToBase(t float64) (quat.Number, error)
	RotationToTarget(t float64) (quat.Number, error)
	DerivativeToBase(t float64) (*mat.Dense, error)
	DerivativeToTarget(t float64) (*mat.Dense, error)
	Kinematics(t float64) (AngularState, error)

	RotationToBaseExt(t simtime.Extended) (quat.Number, error)
	RotationToTargetExt(t simtime.Extended) (quat.Number, error)
	DerivativeToBaseExt(t simtime.Extended) (*mat.Dense, error)
	DerivativeToTargetExt(t simtime.Extended) (*mat.Dense, error)
	KinematicsExt(t simtime.Extended) (AngularState, error)
}

// FramePair names the two frames a model relates; embedded by every model.
type FramePair struct {
	Base   string
	Target string
}

func (f FramePair) BaseFrame() string   { return f.Base }
func (f FramePair) TargetFrame() string { return f.Target }

// plainModel is the float64-seconds capability subset used by extCollapse.
type plainModel interface {
	RotationToBase(t float64) (quat.Number, error)
	RotationToTarget(t float64) (quat.Number, error)
	DerivativeToBase(t float64) (*mat.Dense, error)
	DerivativeToTarget(t float64) (*mat.Dense, error)
	Kinematics(t float64) (AngularState, error)
}

// extCollapse supplies extended-time entry points that collapse the instant
// to plain seconds. Models whose precision matters over long spans override
// the methods they care about.
type extCollapse struct{ m plainModel }

func (c extCollapse) RotationToBaseExt(t simtime.Extended) (quat.Number, error) {
	return c.m.RotationToBase(t.Seconds())
}

func (c extCollapse) RotationToTargetExt(t simtime.Extended) (quat.Number, error) {
	return c.m.RotationToTarget(t.Seconds())
}

func (c extCollapse) DerivativeToBaseExt(t simtime.Extended) (*mat.Dense, error) {
	return c.m.DerivativeToBase(t.Seconds())
}

func (c extCollapse) DerivativeToTargetExt(t simtime.Extended) (*mat.Dense, error) {
	return c.m.DerivativeToTarget(t.Seconds())
}

func (c extCollapse) KinematicsExt(t simtime.Extended) (AngularState, error) {
	return c.m.Kinematics(t.Seconds())
}

// FullKinematics assembles an AngularState from a model's rotation and
// derivative queries, recovering the angular velocity through the kinematic
// identity. Models without a cheaper native computation use it as their
// Kinematics implementation.
func FullKinematics(m Model, t float64) (AngularState, error) {
	rot, err := m.RotationToTarget(t)
	if err != nil {
		return AngularState{}, err
	}
	deriv, err := m.DerivativeToTarget(t)
	if err != nil {
		return AngularState{}, err
	}
	var derivToBase mat.Dense
	derivToBase.CloneFrom(deriv.T())
	omega := frames.AngularVelocityFromDerivative(frames.QuatToMat(rot), &derivToBase)
	return AngularState{
		RotationToTarget:      rot,
		DerivativeToTarget:    deriv,
		AngularVelocityInBase: omega,
	}, nil
}
