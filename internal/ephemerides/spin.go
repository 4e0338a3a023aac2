package ephemerides

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/frames"
	"github.com/KevinDehulsters/tudat/internal/simtime"
)

// SpinModel is a uniformly rotating frame: a fixed orientation at epoch plus
// a constant rotation rate about the target frame's z-axis. It is the usual
// model for the body-fixed frame of a rotating central body, and it
// implements the extended-time entry points natively so that the spin angle
// stays accurate over multi-year spans.
type SpinModel struct {
	FramePair

	rotationAtEpoch quat.Number
	rate            float64
	epoch           simtime.Extended

	// Constant by construction: rate times the epoch rotation applied to
	// the spin axis.
	omegaInBase r3.Vec
}

// NewSpinModel builds a spin model from the rotation to the target frame at
// epoch and the rotation rate in rad/s.
func NewSpinModel(base, target string, rotationAtEpoch quat.Number, rate float64, epoch simtime.Extended) *SpinModel {
	axisInBase := frames.Rotate(quat.Conj(rotationAtEpoch), r3.Vec{Z: 1})
	m := &SpinModel{
		FramePair:       FramePair{Base: base, Target: target},
		rotationAtEpoch: rotationAtEpoch,
		rate:            rate,
		epoch:           epoch,
		omegaInBase:     r3.Scale(rate, axisInBase),
	}
	return m
}

// spinAngle reduces rate·Δt modulo one revolution before building the
// rotation, so large spans do not degrade the sine/cosine arguments.
func (m *SpinModel) spinAngle(dt float64) float64 {
	return math.Mod(m.rate*dt, 2*math.Pi)
}

func (m *SpinModel) rotationToTargetAt(dt float64) quat.Number {
	spin := frames.MatToQuat(frames.R3(m.spinAngle(dt)))
	return quat.Mul(spin, m.rotationAtEpoch)
}

func (m *SpinModel) RotationToTarget(t float64) (quat.Number, error) {
	return m.rotationToTargetAt(t - m.epoch.Seconds()), nil
}

func (m *SpinModel) RotationToBase(t float64) (quat.Number, error) {
	rot, _ := m.RotationToTarget(t)
	return quat.Conj(rot), nil
}

func (m *SpinModel) DerivativeToTarget(t float64) (*mat.Dense, error) {
	rot, _ := m.RotationToTarget(t)
	return frames.DerivativeFromAngularVelocity(frames.QuatToMat(rot), m.omegaInBase), nil
}

func (m *SpinModel) DerivativeToBase(t float64) (*mat.Dense, error) {
	deriv, _ := m.DerivativeToTarget(t)
	var out mat.Dense
	out.CloneFrom(deriv.T())
	return &out, nil
}

func (m *SpinModel) Kinematics(t float64) (AngularState, error) {
	rot, _ := m.RotationToTarget(t)
	return AngularState{
		RotationToTarget:      rot,
		DerivativeToTarget:    frames.DerivativeFromAngularVelocity(frames.QuatToMat(rot), m.omegaInBase),
		AngularVelocityInBase: m.omegaInBase,
	}, nil
}

// Extended-time overrides: the time difference to epoch is formed in the
// split representation, so precision is set by the span since epoch rather
// than the span since the float64 time origin.

func (m *SpinModel) RotationToTargetExt(t simtime.Extended) (quat.Number, error) {
	return m.rotationToTargetAt(t.Sub(m.epoch)), nil
}

func (m *SpinModel) RotationToBaseExt(t simtime.Extended) (quat.Number, error) {
	rot, _ := m.RotationToTargetExt(t)
	return quat.Conj(rot), nil
}

func (m *SpinModel) DerivativeToTargetExt(t simtime.Extended) (*mat.Dense, error) {
	rot, _ := m.RotationToTargetExt(t)
	return frames.DerivativeFromAngularVelocity(frames.QuatToMat(rot), m.omegaInBase), nil
}

func (m *SpinModel) DerivativeToBaseExt(t simtime.Extended) (*mat.Dense, error) {
	deriv, _ := m.DerivativeToTargetExt(t)
	var out mat.Dense
	out.CloneFrom(deriv.T())
	return &out, nil
}

func (m *SpinModel) KinematicsExt(t simtime.Extended) (AngularState, error) {
	rot, _ := m.RotationToTargetExt(t)
	return AngularState{
		RotationToTarget:      rot,
		DerivativeToTarget:    frames.DerivativeFromAngularVelocity(frames.QuatToMat(rot), m.omegaInBase),
		AngularVelocityInBase: m.omegaInBase,
	}, nil
}
