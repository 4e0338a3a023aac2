package ephemerides

import "errors"

// Domain errors for rotational model queries.
var (
	// ErrClosureNotReady indicates a query on an angle-driven model before
	// an angle source was registered to complete its closure.
	ErrClosureNotReady = errors.New("ephemerides: angle closure incomplete (no angle source registered)")

	// ErrUnsupportedOperation indicates a capability the concrete model
	// cannot provide, such as orientation derivatives of an angle-driven
	// model.
	ErrUnsupportedOperation = errors.New("ephemerides: operation not supported by this rotational model")
)
