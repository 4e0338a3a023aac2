package frames

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoTrajectoryRotation indicates the angle calculator was queried without
// a trajectory-frame rotation supplier installed.
var ErrNoTrajectoryRotation = errors.New("frames: no trajectory-to-inertial rotation supplier installed")

// AeroAngles are the aerodynamic orientation angles relating the body axes
// to the relative-wind direction, in radians.
type AeroAngles struct {
	AngleOfAttack float64
	Sideslip      float64
	Bank          float64
}

// AeroToBody returns the rotation from the airspeed-based aerodynamic frame
// to the body frame for the given angle of attack and sideslip.
func AeroToBody(angleOfAttack, sideslip float64) *mat.Dense {
	var body mat.Dense
	body.Mul(R2(angleOfAttack), R3(-sideslip))
	return &body
}

// TrajectoryToAero returns the rotation from the trajectory frame to the
// airspeed-based aerodynamic frame, a roll about the velocity axis by the
// bank angle.
func TrajectoryToAero(bank float64) *mat.Dense {
	return R1(bank)
}

// AngleCalculator converts aerodynamic angles at a given time into a
// body-to-inertial rotation, using the current trajectory-frame orientation.
// The trajectory rotation supplier typically closes over the propagated
// vehicle state, which is what makes the orientation of an angle-driven
// vehicle depend on its own trajectory.
type AngleCalculator struct {
	trajectoryToInertial func(t float64) *mat.Dense
}

// NewAngleCalculator builds a calculator around a trajectory-to-inertial
// rotation supplier.
func NewAngleCalculator(trajectoryToInertial func(t float64) *mat.Dense) *AngleCalculator {
	return &AngleCalculator{trajectoryToInertial: trajectoryToInertial}
}

// BodyToInertial composes trajectory-to-inertial with the angle chain
// trajectory → aerodynamic → body and returns the body-to-inertial rotation.
func (c *AngleCalculator) BodyToInertial(t float64, a AeroAngles) (*mat.Dense, error) {
	if c == nil || c.trajectoryToInertial == nil {
		return nil, ErrNoTrajectoryRotation
	}
	trajToInertial := c.trajectoryToInertial(t)
	if trajToInertial == nil {
		return nil, ErrNoTrajectoryRotation
	}
	var trajToBody, bodyToTraj, out mat.Dense
	trajToBody.Mul(AeroToBody(a.AngleOfAttack, a.Sideslip), TrajectoryToAero(a.Bank))
	bodyToTraj.CloneFrom(trajToBody.T())
	out.Mul(trajToInertial, &bodyToTraj)
	return &out, nil
}
