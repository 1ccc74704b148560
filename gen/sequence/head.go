package sequence

import "github.com/sarchlab/datagen/gen"

// Head yields the first Size indices in order. Zero means one.
type Head struct {
	Size int64
}

// Name returns "head".
func (s Head) Name() string {
	return "head"
}

func (s Head) limit() int64 {
	if s.Size == 0 {
		return 1
	}

	return s.Size
}

// NewCursor creates a cursor. Head sequences are always unique.
func (s Head) NewCursor(size int64, _ bool, _ *gen.Random) (Cursor, error) {
	if s.Size < 0 {
		return nil, configError("size", "must not be negative, got %d", s.Size)
	}

	return &headCursor{limit: min(size, s.limit())}, nil
}

type headCursor struct {
	limit int64
	next  int64
}

func (c *headCursor) Next() (int64, bool) {
	if c.next >= c.limit {
		return 0, false
	}

	c.next++

	return c.next - 1, true
}

func (c *headCursor) Reset() {
	c.next = 0
}
