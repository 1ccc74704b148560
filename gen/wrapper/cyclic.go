package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Cyclic resets its source whenever it depletes, which turns a finite
// generator into an endless one. It only depletes if the source has nothing
// to offer right after a reset.
type Cyclic[T any] struct {
	Base[T, T]
}

// NewCyclic creates a cyclic wrapper.
func NewCyclic[T any](name string, source gen.Generator[T]) (*Cyclic[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	return &Cyclic[T]{Base: MakeBase[T, T](name, source)}, nil
}

// Init initializes the wrapper and its source.
func (c *Cyclic[T]) Init(ctx *gen.Context) error {
	return c.InitSource(ctx)
}

// Generate yields the next product of the source, starting over when the
// source runs out.
func (c *Cyclic[T]) Generate() (gen.Product[T], bool) {
	if !c.Active() {
		return gen.Depleted[T]()
	}

	p, ok := c.source.Generate()
	if !ok {
		c.source.Reset()

		p, ok = c.source.Generate()
		if !ok {
			return c.Deplete()
		}
	}

	return c.YieldProduct(p)
}

// Reset resets the wrapper and its source.
func (c *Cyclic[T]) Reset() {
	c.ResetSource()
}

// Close closes the wrapper and its source.
func (c *Cyclic[T]) Close() {
	c.CloseSource()
}

// IsThreadSafe returns false. Restarting the source races with other callers.
func (c *Cyclic[T]) IsThreadSafe() bool {
	return false
}
