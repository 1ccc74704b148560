package sequence

import (
	"math/bits"

	"github.com/sarchlab/datagen/gen"
)

// BitReverse visits the indices in the order of the bit-reversal
// permutation, which keeps successive values far apart. Over [0, 7] it
// yields 0, 4, 2, 6, 1, 5, 3, 7. If the size is not a power of two, the
// reversed indices beyond the range are skipped.
type BitReverse struct{}

// Name returns "bitreverse".
func (BitReverse) Name() string {
	return "bitreverse"
}

// NewCursor creates a cursor. Bit-reverse sequences are always unique.
func (BitReverse) NewCursor(size int64, _ bool, _ *gen.Random) (Cursor, error) {
	width := 0
	if size > 1 {
		width = bits.Len64(uint64(size - 1))
	}

	return &bitReverseCursor{size: size, width: width}, nil
}

type bitReverseCursor struct {
	size  int64
	width int
	i     uint64
}

func (c *bitReverseCursor) Next() (int64, bool) {
	limit := uint64(1) << c.width

	for c.size > 0 && c.i < limit {
		j := int64(bits.Reverse64(c.i) >> (64 - c.width))
		c.i++

		if j < c.size {
			return j, true
		}
	}

	return 0, false
}

func (c *bitReverseCursor) Reset() {
	c.i = 0
}
