package sample

import "github.com/sarchlab/datagen/gen"

// Iterating yields a fixed list of values in order and then depletes.
type Iterating[T any] struct {
	gen.Base[T]

	values []T
	cursor int
}

// NewIterating creates a generator over the given values.
func NewIterating[T any](name string, values ...T) (*Iterating[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	return &Iterating[T]{
		Base:   gen.MakeBase[T](name),
		values: append([]T(nil), values...),
	}, nil
}

// Init makes the generator available.
func (g *Iterating[T]) Init(ctx *gen.Context) error {
	return g.InitBase(ctx)
}

// Generate yields the next value of the list.
func (g *Iterating[T]) Generate() (gen.Product[T], bool) {
	if !g.Active() {
		return gen.Depleted[T]()
	}

	if g.cursor >= len(g.values) {
		return g.Deplete()
	}

	v := g.values[g.cursor]
	g.cursor++

	return g.Yield(v)
}

// Reset starts over from the first value.
func (g *Iterating[T]) Reset() {
	g.ResetBase()
	g.cursor = 0
}

// Close closes the generator.
func (g *Iterating[T]) Close() {
	g.CloseBase()
}

// IsThreadSafe returns false.
func (g *Iterating[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true, every instance yields the same list.
func (g *Iterating[T]) IsParallelizable() bool {
	return true
}
