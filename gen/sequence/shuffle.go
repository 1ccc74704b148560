package sequence

import "github.com/sarchlab/datagen/gen"

// DefaultShuffleIncrement is the increment used when Shuffle.Increment is
// zero.
const DefaultShuffleIncrement = 2

// Shuffle interleaves strided walks. It first visits 0, inc, 2*inc, ...,
// then 1, 1+inc, ..., until all offsets below inc are used, which covers
// every index exactly once. For size 4 and increment 2 this is 0, 2, 1, 3.
type Shuffle struct {
	Increment int64
}

// Name returns "shuffle".
func (s Shuffle) Name() string {
	return "shuffle"
}

// NewCursor creates a cursor. Shuffle sequences are always unique.
func (s Shuffle) NewCursor(size int64, _ bool, _ *gen.Random) (Cursor, error) {
	inc := s.Increment
	if inc == 0 {
		inc = DefaultShuffleIncrement
	}

	if inc < 0 {
		return nil, configError("increment", "must be positive, got %d", inc)
	}

	return &shuffleCursor{size: size, increment: inc}, nil
}

type shuffleCursor struct {
	size      int64
	increment int64
	offset    int64
	next      int64
}

func (c *shuffleCursor) Next() (int64, bool) {
	if c.next >= c.size {
		c.offset++
		if c.offset >= c.increment || c.offset >= c.size {
			c.next = c.size
			return 0, false
		}

		c.next = c.offset
	}

	v := c.next
	c.next += c.increment

	return v, true
}

func (c *shuffleCursor) Reset() {
	c.offset = 0
	c.next = 0
}
