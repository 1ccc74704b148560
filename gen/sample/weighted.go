package sample

import (
	"sort"

	"github.com/sarchlab/datagen/gen"
)

// Weighted is one entry of a weight table.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedSample draws values from a weight table with probabilities
// proportional to the weights. It never depletes unless the table is empty.
type WeightedSample[T any] struct {
	gen.Base[T]

	entries    []Weighted[T]
	cumulative []float64
	total      float64
	rnd        *gen.Random
}

// NewWeightedSample creates a generator over a weight table. Weights must not
// be negative and must not all be zero.
func NewWeightedSample[T any](
	name string,
	entries ...Weighted[T],
) (*WeightedSample[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	g := &WeightedSample[T]{
		Base:       gen.MakeBase[T](name),
		entries:    append([]Weighted[T](nil), entries...),
		cumulative: make([]float64, len(entries)),
	}

	for i, e := range entries {
		if e.Weight < 0 {
			return nil, gen.NewConfigError(name, "weight",
				"entry %d has negative weight %v", i, e.Weight)
		}

		g.total += e.Weight
		g.cumulative[i] = g.total
	}

	if len(entries) > 0 && g.total == 0 {
		return nil, gen.NewConfigError(name, "weight",
			"the sum of the weights must be positive")
	}

	return g, nil
}

// Entries returns the weight table.
func (g *WeightedSample[T]) Entries() []Weighted[T] {
	return append([]Weighted[T](nil), g.entries...)
}

// Init makes the generator available.
func (g *WeightedSample[T]) Init(ctx *gen.Context) error {
	if err := g.InitBase(ctx); err != nil {
		return err
	}

	g.rnd = ctx.NewRandom()

	return nil
}

// Generate draws a weighted value.
func (g *WeightedSample[T]) Generate() (gen.Product[T], bool) {
	if !g.Active() {
		return gen.Depleted[T]()
	}

	if len(g.entries) == 0 {
		return g.Deplete()
	}

	x := g.rnd.Float64() * g.total
	i := sort.Search(len(g.cumulative), func(i int) bool {
		return g.cumulative[i] > x
	})

	if i == len(g.cumulative) {
		i = len(g.cumulative) - 1
	}

	return g.Yield(g.entries[i].Value)
}

// Reset replays the same draws as after Init.
func (g *WeightedSample[T]) Reset() {
	g.ResetBase()
	g.rnd.Rewind()
}

// Close closes the generator.
func (g *WeightedSample[T]) Close() {
	g.CloseBase()
}

// IsThreadSafe returns false.
func (g *WeightedSample[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true.
func (g *WeightedSample[T]) IsParallelizable() bool {
	return true
}
