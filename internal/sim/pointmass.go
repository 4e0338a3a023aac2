package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrajectoryFrame builds the trajectory-to-inertial rotation from an
// inertial position and velocity. The first axis points along the velocity,
// the third lies in the position/velocity plane toward the central body,
// the second completes the right-handed triad.
func TrajectoryFrame(pos, vel r3.Vec) (*mat.Dense, error) {
	speed := r3.Norm(vel)
	if speed == 0 {
		return nil, fmt.Errorf("sim: trajectory frame undefined at zero velocity")
	}
	x := r3.Scale(1/speed, vel)
	down := r3.Scale(-1, pos)
	y := r3.Cross(down, x)
	ny := r3.Norm(y)
	if ny < 1e-12*r3.Norm(pos) {
		return nil, fmt.Errorf("sim: trajectory frame undefined, velocity parallel to position")
	}
	y = r3.Scale(1/ny, y)
	z := r3.Cross(x, y)
	return mat.NewDense(3, 3, []float64{
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	}), nil
}

// PointMass propagates a translational state under central gravity and the
// aerodynamic force from the flight conditions. Each derivative evaluation
// installs the stage state into the flight conditions first, so a staged
// evaluation at a repeated time still sees the stage's own state.
type PointMass struct {
	Mu         float64
	Conditions *FlightConditions
}

func NewPointMass(mu float64, fc *FlightConditions) *PointMass {
	return &PointMass{Mu: mu, Conditions: fc}
}

func (p *PointMass) StateDim() int { return 6 }

func (p *PointMass) Derivative(x State, t float64) (State, error) {
	if len(x) != p.StateDim() {
		return nil, fmt.Errorf("sim: point-mass dynamics expect a 6-state, got length %d", len(x))
	}
	p.Conditions.SetState(x)

	pos := x.Position()
	r := r3.Norm(pos)
	if r == 0 {
		return nil, fmt.Errorf("sim: gravity singular at the origin")
	}
	accel := r3.Scale(-p.Mu/(r*r*r), pos)

	aeroForce, err := p.Conditions.AerodynamicForce(t)
	if err != nil {
		return nil, err
	}
	accel = r3.Add(accel, r3.Scale(1/p.Conditions.vehicle.Mass, aeroForce))

	vel := x.Velocity()
	return State{vel.X, vel.Y, vel.Z, accel.X, accel.Y, accel.Z}, nil
}

// TrajectorySupplier returns a rotation supplier suitable for an angle
// calculator, closing over the flight conditions' current state. A
// degenerate geometry makes the supplier return nil, which the calculator
// reports as a missing rotation.
func (fc *FlightConditions) TrajectorySupplier() func(t float64) *mat.Dense {
	return func(t float64) *mat.Dense {
		if fc.state == nil {
			return nil
		}
		rot, err := TrajectoryFrame(fc.state.Position(), fc.state.Velocity())
		if err != nil {
			return nil
		}
		return rot
	}
}

var _ Dynamics = (*PointMass)(nil)
