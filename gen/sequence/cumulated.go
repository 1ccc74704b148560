package sequence

import "github.com/sarchlab/datagen/gen"

// DefaultCumulatedTerms is the number of terms used when Cumulated.Terms is
// zero.
const DefaultCumulatedTerms = 5

// Cumulated sums several uniform draws, which concentrates the results
// around the middle of the range. The span of the index space is split into
// Terms parts and one uniform number is drawn from each.
type Cumulated struct {
	Terms int
}

// Name returns "cumulated".
func (s Cumulated) Name() string {
	return "cumulated"
}

// NewCursor creates a cursor. Cumulated sequences cannot be unique.
func (s Cumulated) NewCursor(
	size int64,
	unique bool,
	rnd *gen.Random,
) (Cursor, error) {
	terms := s.Terms
	if terms == 0 {
		terms = DefaultCumulatedTerms
	}

	if terms < 0 {
		return nil, configError("terms", "must be positive, got %d", terms)
	}

	if unique {
		return nil, configError("unique",
			"cumulated sequences cannot produce unique values")
	}

	if size == 0 {
		return exhaustedCursor{}, nil
	}

	span := size - 1
	parts := make([]int64, terms)

	for i := range parts {
		parts[i] = span / int64(terms)
		if int64(i) < span%int64(terms) {
			parts[i]++
		}
	}

	return &cumulatedCursor{parts: parts, rnd: rnd}, nil
}

type cumulatedCursor struct {
	parts []int64
	rnd   *gen.Random
}

func (c *cumulatedCursor) Next() (int64, bool) {
	var sum int64
	for _, p := range c.parts {
		sum += c.rnd.Int64Between(0, p)
	}

	return sum, true
}

func (c *cumulatedCursor) Reset() {}
