package sequence

import (
	"sort"

	"github.com/sarchlab/datagen/gen"
)

// MaxWeightTableSize limits the number of indices a non-uniform weighted
// sequence tabulates.
const MaxWeightTableSize = 1 << 22

// Weighted draws indices at random. Without weights every index is equally
// likely, and a unique cursor yields a random permutation of the range.
// Weights are given either as one value per index or by a function of the
// index. Weighted sequences with non-uniform weights cannot be unique.
type Weighted struct {
	Weights    []float64
	WeightFunc func(index int64) float64
}

// Name returns "random" for uniform sequences and "weighted" otherwise.
func (s Weighted) Name() string {
	if s.uniform() {
		return "random"
	}

	return "weighted"
}

func (s Weighted) uniform() bool {
	return len(s.Weights) == 0 && s.WeightFunc == nil
}

// NewCursor creates a cursor.
func (s Weighted) NewCursor(
	size int64,
	unique bool,
	rnd *gen.Random,
) (Cursor, error) {
	if s.uniform() {
		if size == 0 {
			return exhaustedCursor{}, nil
		}

		if unique {
			return &permutationCursor{
				size:    size,
				rnd:     rnd,
				swapped: make(map[int64]int64),
			}, nil
		}

		return &uniformCursor{size: size, rnd: rnd}, nil
	}

	if unique {
		return nil, configError("unique",
			"weighted sequences cannot produce unique values")
	}

	cumulative, err := s.table(size)
	if err != nil {
		return nil, err
	}

	return &weightedCursor{cumulative: cumulative, rnd: rnd}, nil
}

func (s Weighted) table(size int64) ([]float64, error) {
	if len(s.Weights) > 0 && int64(len(s.Weights)) != size {
		return nil, configError("weights",
			"%d weights given for %d values", len(s.Weights), size)
	}

	if size > MaxWeightTableSize {
		return nil, configError("weights",
			"cannot tabulate %d weights, the limit is %d",
			size, MaxWeightTableSize)
	}

	cumulative := make([]float64, size)
	total := 0.0

	for i := range cumulative {
		w := s.weight(int64(i))
		if w < 0 {
			return nil, configError("weights",
				"index %d has negative weight %v", i, w)
		}

		total += w
		cumulative[i] = total
	}

	if total <= 0 {
		return nil, configError("weights", "the sum of the weights must be positive")
	}

	return cumulative, nil
}

func (s Weighted) weight(i int64) float64 {
	if s.WeightFunc != nil {
		return s.WeightFunc(i)
	}

	return s.Weights[i]
}

type uniformCursor struct {
	size int64
	rnd  *gen.Random
}

func (c *uniformCursor) Next() (int64, bool) {
	return c.rnd.Int64N(c.size), true
}

func (c *uniformCursor) Reset() {}

// permutationCursor runs a Fisher-Yates shuffle lazily. Only the swapped
// positions are stored, so large ranges cost memory in proportion to the
// number of values drawn.
type permutationCursor struct {
	size    int64
	rnd     *gen.Random
	i       int64
	swapped map[int64]int64
}

func (c *permutationCursor) at(i int64) int64 {
	if v, ok := c.swapped[i]; ok {
		return v
	}

	return i
}

func (c *permutationCursor) Next() (int64, bool) {
	if c.i >= c.size {
		return 0, false
	}

	j := c.i + c.rnd.Int64N(c.size-c.i)
	vi, vj := c.at(c.i), c.at(j)

	c.swapped[j] = vi
	delete(c.swapped, c.i)
	c.i++

	return vj, true
}

func (c *permutationCursor) Reset() {
	c.i = 0
	clear(c.swapped)
}

type weightedCursor struct {
	cumulative []float64
	rnd        *gen.Random
}

func (c *weightedCursor) Next() (int64, bool) {
	total := c.cumulative[len(c.cumulative)-1]
	x := c.rnd.Float64() * total

	i := sort.SearchFloat64s(c.cumulative, x)
	for i < len(c.cumulative)-1 && c.cumulative[i] <= x {
		i++
	}

	return int64(i), true
}

func (c *weightedCursor) Reset() {}
