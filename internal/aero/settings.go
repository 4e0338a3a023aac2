package aero

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// SettingsKind tags the coefficient model variant a Settings describes.
type SettingsKind string

const (
	ConstantCoefficients  SettingsKind = "constant"
	TabulatedCoefficients SettingsKind = "tabulated"
)

// ConstantSettings holds fixed force and moment coefficients.
type ConstantSettings struct {
	Force  r3.Vec
	Moment r3.Vec
}

// TabulatedSettings holds the per-axis component tables for a tabulated
// model. A nil component table stands for an identically zero component.
// All non-nil tables must share the same grid.
type TabulatedSettings struct {
	Variables []IndependentVariable
	Force     [3]*ScalarTable
	Moment    [3]*ScalarTable
}

// Settings is the closed tagged descriptor from which the factory builds a
// coefficient model. Exactly the payload named by Kind must be set. Control
// surface increment models are described recursively by the same type.
type Settings struct {
	Kind            SettingsKind
	Constant        *ConstantSettings
	Tabulated       *TabulatedSettings
	ControlSurfaces map[string]*Settings
}

// payloadKind reports which payload is actually populated, for mismatch
// diagnostics.
func (s *Settings) payloadKind() string {
	switch {
	case s.Constant != nil && s.Tabulated != nil:
		return "both constant and tabulated"
	case s.Constant != nil:
		return string(ConstantCoefficients)
	case s.Tabulated != nil:
		return string(TabulatedCoefficients)
	}
	return "none"
}

// validate checks the declared kind against the supplied payload.
func (s *Settings) validate() error {
	if s == nil {
		return fmt.Errorf("aero: nil coefficient settings")
	}
	var want string
	switch s.Kind {
	case ConstantCoefficients:
		if s.Constant != nil && s.Tabulated == nil {
			return nil
		}
		want = string(ConstantCoefficients)
	case TabulatedCoefficients:
		if s.Tabulated != nil && s.Constant == nil {
			return nil
		}
		want = string(TabulatedCoefficients)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrSettingsTypeMismatch, s.Kind)
	}
	return fmt.Errorf("%w: declared %q, supplied %s", ErrSettingsTypeMismatch, want, s.payloadKind())
}
