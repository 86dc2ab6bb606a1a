package mpm

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned by constructors when the requested window
// length N is less than 1.
var ErrInvalidLength = errors.New("mpm: length must be >= 1")

// LengthError reports that a caller-supplied buffer does not match the
// instance's configured window length N.
type LengthError struct {
	Expected, Got int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("mpm: wrong length: expected %d, got %d", e.Expected, e.Got)
}

// ConfigError reports an invalid argument to a configuration setter.
// Instance state is left untouched when a setter returns one.
type ConfigError struct {
	Parameter string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("mpm: invalid config %q: %s", e.Parameter, e.Reason)
}
