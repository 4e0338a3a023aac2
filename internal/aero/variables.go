// Package aero builds and evaluates aerodynamic force and moment coefficient
// models from tagged settings and tabulated multi-dimensional data, and
// closes the orientation loop through trimmed flight conditions.
package aero

// IndependentVariable names a tabulation parameter of a coefficient model.
type IndependentVariable string

const (
	MachNumber               IndependentVariable = "mach_number"
	AngleOfAttack            IndependentVariable = "angle_of_attack"
	AngleOfSideslip          IndependentVariable = "angle_of_sideslip"
	Altitude                 IndependentVariable = "altitude"
	ControlSurfaceDeflection IndependentVariable = "control_surface_deflection"
)

// Known reports whether v is one of the recognized tabulation parameters.
func (v IndependentVariable) Known() bool {
	switch v {
	case MachNumber, AngleOfAttack, AngleOfSideslip, Altitude, ControlSurfaceDeflection:
		return true
	}
	return false
}

// indexOf returns the position of v in vars, or -1.
func indexOf(vars []IndependentVariable, v IndependentVariable) int {
	for i, w := range vars {
		if w == v {
			return i
		}
	}
	return -1
}
