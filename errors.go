package tuning

import "errors"

var (
	// ErrUnknownSystem is returned when a tuning system identifier does not
	// name any of the known systems.
	ErrUnknownSystem = errors.New("no such tuning system")
	// ErrInvalidFraction is returned for fractions with a zero denominator.
	ErrInvalidFraction = errors.New("invalid fraction")
	// ErrInvalidConfig is returned when an octave or step size is not
	// positive.
	ErrInvalidConfig = errors.New("invalid tuning configuration")
)
