package sequence

import "github.com/sarchlab/datagen/gen"

// Wedge alternates between the two ends of the range and converges inward:
// min, max, min+g, max-g, ... An odd-length progression ends with its middle
// value.
type Wedge struct{}

// Name returns "wedge".
func (Wedge) Name() string {
	return "wedge"
}

// NewCursor creates a cursor. Wedge sequences are always unique.
func (Wedge) NewCursor(size int64, _ bool, _ *gen.Random) (Cursor, error) {
	c := &wedgeCursor{size: size}
	c.Reset()

	return c, nil
}

type wedgeCursor struct {
	size    int64
	lower   int64
	upper   int64
	fromTop bool
}

func (c *wedgeCursor) Next() (int64, bool) {
	if c.lower > c.upper {
		return 0, false
	}

	var v int64
	if c.fromTop {
		v = c.upper
		c.upper--
	} else {
		v = c.lower
		c.lower++
	}

	c.fromTop = !c.fromTop

	return v, true
}

func (c *wedgeCursor) Reset() {
	c.lower = 0
	c.upper = c.size - 1
	c.fromTop = false
}
