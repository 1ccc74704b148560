package sequence

import "github.com/sarchlab/datagen/gen"

// RandomWalk starts at an initial index and moves by a uniformly drawn step
// in [MinStep, MaxStep] on every call. A walk that would leave the range is
// clamped to its boundary. Unique walks need all steps to be non-zero and of
// one sign; they deplete instead of clamping. If both steps are zero, the
// walk moves by -1, 0 or 1.
type RandomWalk struct {
	MinStep int64
	MaxStep int64

	// Initial is the first index. Nil starts at the lower end if the walk
	// only goes up, at the upper end if it only goes down, and in the middle
	// otherwise.
	Initial *int64
}

// Name returns "randomwalk".
func (w RandomWalk) Name() string {
	return "randomwalk"
}

// NewCursor creates a cursor.
func (w RandomWalk) NewCursor(
	size int64,
	unique bool,
	rnd *gen.Random,
) (Cursor, error) {
	minStep, maxStep := w.MinStep, w.MaxStep
	if minStep == 0 && maxStep == 0 {
		minStep, maxStep = -1, 1
	}

	if minStep > maxStep {
		return nil, configError("minStep",
			"%d is greater than maxStep %d", minStep, maxStep)
	}

	if unique && minStep <= 0 && maxStep >= 0 {
		return nil, configError("unique",
			"a unique random walk needs non-zero steps of one sign, got [%d, %d]",
			minStep, maxStep)
	}

	if size == 0 {
		return exhaustedCursor{}, nil
	}

	initial, err := w.initial(size, minStep, maxStep)
	if err != nil {
		return nil, err
	}

	return &randomWalkCursor{
		size:    size,
		minStep: minStep,
		maxStep: maxStep,
		initial: initial,
		unique:  unique,
		rnd:     rnd,
		first:   true,
	}, nil
}

func (w RandomWalk) initial(size, minStep, maxStep int64) (int64, error) {
	if w.Initial != nil {
		if *w.Initial < 0 || *w.Initial >= size {
			return 0, configError("initial",
				"%d is outside of [0, %d)", *w.Initial, size)
		}

		return *w.Initial, nil
	}

	switch {
	case minStep >= 0:
		return 0, nil
	case maxStep <= 0:
		return size - 1, nil
	default:
		return (size - 1) / 2, nil
	}
}

type randomWalkCursor struct {
	size             int64
	minStep, maxStep int64
	initial          int64
	unique           bool
	rnd              *gen.Random

	first bool
	done  bool
	cur   int64
}

func (c *randomWalkCursor) Next() (int64, bool) {
	if c.done {
		return 0, false
	}

	if c.first {
		c.first = false
		c.cur = c.initial

		return c.cur, true
	}

	next := c.cur + c.rnd.Int64Between(c.minStep, c.maxStep)

	switch {
	case next >= 0 && next < c.size:
	case c.unique:
		c.done = true
		return 0, false
	case next < 0:
		next = 0
	default:
		next = c.size - 1
	}

	c.cur = next

	return c.cur, true
}

func (c *randomWalkCursor) Reset() {
	c.first = true
	c.done = false
}
