package gen

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Depletion is not an error and has no kind.
var (
	// ErrConfiguration marks invalid generator setup: bad ranges, missing
	// sources, non-positive granularity and the like.
	ErrConfiguration = errors.New("invalid generator configuration")

	// ErrIllegalState marks lifecycle misuse such as generating before Init
	// or initializing twice.
	ErrIllegalState = errors.New("illegal generator state")
)

// A ConfigError reports the property of a generator that violates a
// constraint. It matches ErrConfiguration with errors.Is.
type ConfigError struct {
	Generator string
	Property  string
	Reason    string
}

func (e *ConfigError) Error() string {
	if e.Generator == "" {
		return fmt.Sprintf("invalid %s: %s", e.Property, e.Reason)
	}

	return fmt.Sprintf("%s: invalid %s: %s", e.Generator, e.Property, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigError creates a configuration error for a property of the named
// generator.
func NewConfigError(generator, property, format string, args ...any) error {
	return errors.WithStack(&ConfigError{
		Generator: generator,
		Property:  property,
		Reason:    fmt.Sprintf(format, args...),
	})
}

// NewStateError creates an error marked with ErrIllegalState.
func NewStateError(generator, format string, args ...any) error {
	err := errors.Newf("%s: "+format, append([]any{generator}, args...)...)

	return errors.Mark(err, ErrIllegalState)
}

// PropertyOf returns the property named by a configuration error, or an empty
// string if err does not carry one.
func PropertyOf(err error) string {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Property
	}

	return ""
}

// IsConfigError tells whether err is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsStateError tells whether err is a lifecycle misuse error.
func IsStateError(err error) bool {
	return errors.Is(err, ErrIllegalState)
}
