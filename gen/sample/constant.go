package sample

import "github.com/sarchlab/datagen/gen"

// Constant generates the same value forever.
type Constant[T any] struct {
	gen.Base[T]

	value T
}

// NewConstant creates a generator that always yields value.
func NewConstant[T any](name string, value T) (*Constant[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	return &Constant[T]{Base: gen.MakeBase[T](name), value: value}, nil
}

// Init makes the generator available.
func (g *Constant[T]) Init(ctx *gen.Context) error {
	return g.InitBase(ctx)
}

// Generate yields the constant.
func (g *Constant[T]) Generate() (gen.Product[T], bool) {
	if !g.Active() {
		return gen.Depleted[T]()
	}

	return g.Yield(g.value)
}

// Reset does nothing beside the lifecycle bookkeeping.
func (g *Constant[T]) Reset() {
	g.ResetBase()
}

// Close closes the generator.
func (g *Constant[T]) Close() {
	g.CloseBase()
}

// IsThreadSafe returns true, the generator has no mutable state.
func (g *Constant[T]) IsThreadSafe() bool {
	return true
}

// IsParallelizable returns true.
func (g *Constant[T]) IsParallelizable() bool {
	return true
}
