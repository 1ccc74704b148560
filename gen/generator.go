// Package gen defines the Generator contract of datagen and the lifecycle
// machinery shared by all generator implementations.
//
// A generator is driven through
//
//	Init -> Generate* -> [Reset -> Generate*]* -> Close
//
// Generate returns (product, true) while values are available and
// (zero, false) once the value space is depleted. Depletion is a normal
// control signal, not an error; Reset makes a depleted generator start over
// exactly as after Init.
package gen

import (
	"reflect"

	"github.com/sarchlab/datagen/gen/hooking"
	"github.com/sarchlab/datagen/gen/naming"
)

// State is the lifecycle state of a generator.
type State int32

// The lifecycle states.
const (
	// StateCreated is the state after construction and before Init.
	StateCreated State = iota
	// StateRunning means the generator can produce values.
	StateRunning
	// StateUnavailable means the value space is depleted. Reset leaves it.
	StateUnavailable
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateUnavailable:
		return "unavailable"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// A Generator produces a stream of values of type T.
type Generator[T any] interface {
	naming.Named
	hooking.Hookable

	// GeneratedType returns the type of the generated values.
	GeneratedType() reflect.Type

	// State returns the current lifecycle state.
	State() State

	// Init validates the configuration and makes the generator available.
	// Calling it twice returns an ErrIllegalState error.
	Init(ctx *Context) error

	// Generate returns the next product, or false if the generator is
	// depleted or closed. It panics if the generator was never initialized.
	Generate() (Product[T], bool)

	// Reset restarts the generator as if it was just initialized. It panics
	// on generators that are not initialized or already closed.
	Reset()

	// Close releases the resources of the generator, including its owned
	// sources. Closing twice is allowed.
	Close()

	// IsThreadSafe tells whether one instance may serve concurrent callers.
	IsThreadSafe() bool

	// IsParallelizable tells whether several instances may run in parallel
	// without breaking global guarantees such as uniqueness.
	IsParallelizable() bool
}
