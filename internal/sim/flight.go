package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/KevinDehulsters/tudat/internal/aero"
	"github.com/KevinDehulsters/tudat/internal/ephemerides"
	"github.com/KevinDehulsters/tudat/internal/frames"
)

// Atmosphere supplies density as a function of altitude.
type Atmosphere interface {
	Density(altitude float64) float64
}

// ExponentialAtmosphere is the usual rho0*exp(-h/H) profile.
type ExponentialAtmosphere struct {
	SurfaceDensity float64
	ScaleHeight    float64
}

func (a ExponentialAtmosphere) Density(altitude float64) float64 {
	return a.SurfaceDensity * math.Exp(-altitude/a.ScaleHeight)
}

// Shape maps an inertial position to an altitude above the body surface.
type Shape interface {
	Altitude(pos r3.Vec) float64
}

// SphericalShape measures altitude from a constant-radius sphere.
type SphericalShape struct {
	Radius float64
}

func (s SphericalShape) Altitude(pos r3.Vec) float64 {
	return r3.Norm(pos) - s.Radius
}

// Vehicle holds the constant vehicle properties the force model needs.
type Vehicle struct {
	Mass           float64
	ReferenceArea  float64
	SpeedOfSound   float64
	ControlSurface map[string][]float64
}

// FlightConditions derives the aerodynamic environment from the current
// state and evaluates the coefficient model at it. Derived quantities are
// cached per query time; SetState invalidates the cache so staged
// integrator evaluations at the same time but a different state resolve
// against the fresh state.
//
// Angle variables in the coefficient lookup come from the angles the
// orientation model resolved on the previous query, never from a fresh
// orientation query. The trim solver's variable supplier routes through
// IndependentVariables, so a trim evaluation must not re-enter the
// orientation model it is completing.
type FlightConditions struct {
	atmosphere Atmosphere
	shape      Shape
	vehicle    Vehicle
	model      aero.Model
	ephemeris  *ephemerides.AeroAngleEphemeris

	state  State
	angles frames.AeroAngles

	lastTime    float64
	altitude    float64
	density     float64
	airspeed    float64
	mach        float64
	dynPressure float64
	variables   []float64
	force       r3.Vec
}

// NewFlightConditions wires the environment models together. All
// collaborators must be supplied up front; a nil one is rejected here
// rather than at first query.
func NewFlightConditions(atm Atmosphere, shape Shape, vehicle Vehicle, model aero.Model, eph *ephemerides.AeroAngleEphemeris) (*FlightConditions, error) {
	if atm == nil {
		return nil, errors.New("sim: flight conditions require an atmosphere model")
	}
	if shape == nil {
		return nil, errors.New("sim: flight conditions require a body shape model")
	}
	if model == nil {
		return nil, errors.New("sim: flight conditions require a coefficient model")
	}
	if eph == nil {
		return nil, errors.New("sim: flight conditions require an orientation model")
	}
	if vehicle.Mass <= 0 {
		return nil, fmt.Errorf("sim: vehicle mass must be positive, got %g", vehicle.Mass)
	}
	if vehicle.ReferenceArea <= 0 {
		return nil, fmt.Errorf("sim: reference area must be positive, got %g", vehicle.ReferenceArea)
	}
	if vehicle.SpeedOfSound <= 0 {
		return nil, fmt.Errorf("sim: speed of sound must be positive, got %g", vehicle.SpeedOfSound)
	}
	return &FlightConditions{
		atmosphere: atm,
		shape:      shape,
		vehicle:    vehicle,
		model:      model,
		ephemeris:  eph,
		lastTime:   math.NaN(),
	}, nil
}

// SetState installs the state the next queries resolve against. A changed
// state clears the time cache and resets the orientation model so its
// memoized rotation is recomputed.
func (fc *FlightConditions) SetState(x State) {
	if fc.state != nil && fc.state.Equal(x) {
		return
	}
	fc.state = x.Clone()
	fc.lastTime = math.NaN()
	fc.ephemeris.ResetCurrentTime()
}

// Update computes the derived quantities for time t if not already cached.
func (fc *FlightConditions) Update(t float64) error {
	if fc.state == nil {
		return errors.New("sim: flight conditions queried before any state was set")
	}
	if t == fc.lastTime {
		return nil
	}
	pos := fc.state.Position()
	vel := fc.state.Velocity()

	altitude := fc.shape.Altitude(pos)
	density := fc.atmosphere.Density(altitude)
	airspeed := r3.Norm(vel)
	mach := airspeed / fc.vehicle.SpeedOfSound
	dynPressure := 0.5 * density * airspeed * airspeed

	vars, err := fc.variablesAt(altitude, mach)
	if err != nil {
		return err
	}
	coeff, err := fc.model.ForceCoefficients(vars)
	if err != nil {
		return err
	}
	for name, inc := range fc.model.Increments() {
		incVars, ok := fc.vehicle.ControlSurface[name]
		if !ok {
			return fmt.Errorf("sim: no deflection supplied for control surface %q", name)
		}
		c, err := inc.ForceCoefficients(incVars)
		if err != nil {
			return fmt.Errorf("sim: control surface %q: %w", name, err)
		}
		coeff = r3.Add(coeff, c)
	}

	fc.lastTime = t
	fc.altitude = altitude
	fc.density = density
	fc.airspeed = airspeed
	fc.mach = mach
	fc.dynPressure = dynPressure
	fc.variables = vars
	fc.force = r3.Scale(dynPressure*fc.vehicle.ReferenceArea, coeff)
	return nil
}

// variablesAt assembles the coefficient model's independent variable vector
// from the derived quantities and the last resolved orientation angles.
func (fc *FlightConditions) variablesAt(altitude, mach float64) ([]float64, error) {
	names := fc.model.Variables()
	vars := make([]float64, len(names))
	for i, name := range names {
		switch name {
		case aero.MachNumber:
			vars[i] = mach
		case aero.Altitude:
			vars[i] = altitude
		case aero.AngleOfAttack:
			vars[i] = fc.angles.AngleOfAttack
		case aero.AngleOfSideslip:
			vars[i] = fc.angles.Sideslip
		default:
			return nil, fmt.Errorf("sim: cannot supply independent variable %q", name)
		}
	}
	return vars, nil
}

// IndependentVariables exposes the variable vector for the trim solver,
// which bisects angle of attack against the same environment the force
// evaluation sees.
func (fc *FlightConditions) IndependentVariables(t float64) ([]float64, error) {
	if err := fc.Update(t); err != nil {
		return nil, err
	}
	out := make([]float64, len(fc.variables))
	copy(out, fc.variables)
	return out, nil
}

// AerodynamicForce returns the aerodynamic force in the inertial frame for
// time t. The orientation model resolves after the first coefficient
// evaluation; if its angles moved, the coefficients are evaluated once
// more at the resolved angles. There is no iteration beyond that.
func (fc *FlightConditions) AerodynamicForce(t float64) (r3.Vec, error) {
	if err := fc.Update(t); err != nil {
		return r3.Vec{}, err
	}
	if err := fc.ephemeris.Update(t); err != nil {
		return r3.Vec{}, err
	}
	angles, err := fc.ephemeris.Angles(t)
	if err != nil {
		return r3.Vec{}, err
	}
	if angles != fc.angles {
		fc.angles = angles
		fc.lastTime = math.NaN()
		if err := fc.Update(t); err != nil {
			return r3.Vec{}, err
		}
	}
	rot, err := fc.ephemeris.RotationToBase(t)
	if err != nil {
		return r3.Vec{}, err
	}
	return frames.Rotate(rot, fc.force), nil
}

// ControlSurfaceVariables exposes the per-surface variable vectors the
// increment models are evaluated at.
func (fc *FlightConditions) ControlSurfaceVariables() map[string][]float64 {
	return fc.vehicle.ControlSurface
}

func (fc *FlightConditions) Altitude() float64        { return fc.altitude }
func (fc *FlightConditions) Density() float64         { return fc.density }
func (fc *FlightConditions) Airspeed() float64        { return fc.airspeed }
func (fc *FlightConditions) Mach() float64            { return fc.mach }
func (fc *FlightConditions) DynamicPressure() float64 { return fc.dynPressure }
