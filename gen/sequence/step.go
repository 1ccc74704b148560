package sequence

import "github.com/sarchlab/datagen/gen"

// Step walks the progression with a fixed stride. A negative Delta starts at
// the top of the range and walks down. Zero means one.
type Step struct {
	Delta int64
}

// Name returns "step".
func (s Step) Name() string {
	return "step"
}

// NewCursor creates a cursor. Step sequences are always unique.
func (s Step) NewCursor(size int64, _ bool, _ *gen.Random) (Cursor, error) {
	delta := s.Delta
	if delta == 0 {
		delta = 1
	}

	c := &stepCursor{size: size, delta: delta}
	c.Reset()

	return c, nil
}

type stepCursor struct {
	size  int64
	delta int64
	next  int64
}

func (c *stepCursor) Next() (int64, bool) {
	if c.next < 0 || c.next >= c.size {
		return 0, false
	}

	v := c.next
	c.next += c.delta

	return v, true
}

func (c *stepCursor) Reset() {
	if c.delta > 0 {
		c.next = 0
	} else {
		c.next = c.size - 1
	}
}
