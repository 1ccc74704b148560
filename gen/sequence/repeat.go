package sequence

import "github.com/sarchlab/datagen/gen"

// Repeat emits every index of an inner sequence a random number of times in
// [MinCount, MaxCount]. A count of zero drops the index. If both counts are
// zero, every index is emitted one to three times.
type Repeat struct {
	Inner    Sequence
	MinCount int64
	MaxCount int64
}

// Name returns "repeat".
func (s Repeat) Name() string {
	return "repeat"
}

// NewCursor creates a cursor. A repeat sequence is unique only if no index
// is emitted more than once.
func (s Repeat) NewCursor(
	size int64,
	unique bool,
	rnd *gen.Random,
) (Cursor, error) {
	minCount, maxCount := s.MinCount, s.MaxCount
	if minCount == 0 && maxCount == 0 {
		minCount, maxCount = 1, 3
	}

	if minCount < 0 || maxCount < minCount {
		return nil, configError("count",
			"[%d, %d] is not a valid repetition range", minCount, maxCount)
	}

	if unique && maxCount > 1 {
		return nil, configError("unique",
			"a unique repeat sequence must not repeat, got maxCount %d", maxCount)
	}

	inner := s.Inner
	if inner == nil {
		inner = Step{}
	}

	c, err := inner.NewCursor(size, unique, rnd)
	if err != nil {
		return nil, err
	}

	return &repeatCursor{
		inner:    c,
		minCount: minCount,
		maxCount: maxCount,
		rnd:      rnd,
	}, nil
}

type repeatCursor struct {
	inner              Cursor
	minCount, maxCount int64
	rnd                *gen.Random

	current   int64
	remaining int64
}

func (c *repeatCursor) Next() (int64, bool) {
	if c.remaining > 0 {
		c.remaining--
		return c.current, true
	}

	for {
		i, ok := c.inner.Next()
		if !ok {
			return 0, false
		}

		count := c.rnd.Int64Between(c.minCount, c.maxCount)
		if count == 0 {
			continue
		}

		c.current = i
		c.remaining = count - 1

		return i, true
	}
}

func (c *repeatCursor) Reset() {
	c.inner.Reset()
	c.remaining = 0
}
