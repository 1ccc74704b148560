// Package sequence implements the visitation orders and sampling
// distributions used to generate numbers and to reorder the output of other
// generators.
//
// A Sequence is a stateless strategy. Given the size of an index space it
// creates a Cursor, which holds the run-time position. Number generators map
// the index i of the progression min, min+g, min+2g, ..., max to min+i*g;
// ApplyTo maps it to the i-th buffered product of a source generator. All
// step sizes of the sequences are counted in index units, i.e. in multiples of
// the granularity.
package sequence

import (
	"github.com/sarchlab/datagen/gen"
)

// A Cursor walks an index space [0, size).
type Cursor interface {
	// Next returns the next index, or false if the sequence is depleted.
	Next() (int64, bool)

	// Reset restarts the cursor. The random stream the cursor was created
	// with is rewound by the caller before Reset is called.
	Reset()
}

// A Sequence creates cursors. Sequences are immutable and may be shared
// between goroutines.
type Sequence interface {
	// Name returns the distribution name of the sequence.
	Name() string

	// NewCursor creates a cursor over [0, size). If unique is set, the
	// cursor must never repeat an index; sequences that cannot guarantee
	// this return a configuration error.
	NewCursor(size int64, unique bool, rnd *gen.Random) (Cursor, error)
}

// exhaustedCursor is used for empty index spaces.
type exhaustedCursor struct{}

func (exhaustedCursor) Next() (int64, bool) {
	return 0, false
}

func (exhaustedCursor) Reset() {}

func configError(property, format string, args ...any) error {
	return gen.NewConfigError("", property, format, args...)
}
