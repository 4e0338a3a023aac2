package aero

import "errors"

// Domain errors for coefficient model construction and evaluation.
var (
	// ErrInconsistentIndependentVariables indicates per-axis component
	// tables whose shapes or breakpoint lists differ.
	ErrInconsistentIndependentVariables = errors.New("aero: inconsistent independent variables between component tables")

	// ErrUnsupportedDimensionality indicates a table or settings descriptor
	// outside the supported 1 through 6 independent variables.
	ErrUnsupportedDimensionality = errors.New("aero: unsupported dimensionality")

	// ErrSettingsTypeMismatch indicates a settings descriptor whose declared
	// kind does not match the payload actually supplied.
	ErrSettingsTypeMismatch = errors.New("aero: settings kind does not match payload")

	// ErrDimensionalityMismatch indicates an evaluation with the wrong
	// number of independent variable values.
	ErrDimensionalityMismatch = errors.New("aero: independent variable count does not match dimensionality")

	// ErrTrimNotFound indicates the pitching moment has no root in the
	// configured bracket, or the iteration budget ran out.
	ErrTrimNotFound = errors.New("aero: no trim angle of attack found")
)
