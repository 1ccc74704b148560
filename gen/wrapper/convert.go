package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Convert maps the products of a source with a function. Tags are kept.
type Convert[S, T any] struct {
	Base[S, T]

	fn func(S) T
}

// NewConvert creates a converting wrapper.
func NewConvert[S, T any](
	name string,
	source gen.Generator[S],
	fn func(S) T,
) (*Convert[S, T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	if fn == nil {
		return nil, gen.NewConfigError(name, "converter", "must not be nil")
	}

	return &Convert[S, T]{
		Base: MakeBase[S, T](name, source),
		fn:   fn,
	}, nil
}

// Init initializes the wrapper and its source.
func (c *Convert[S, T]) Init(ctx *gen.Context) error {
	return c.InitSource(ctx)
}

// Generate converts the next product of the source.
func (c *Convert[S, T]) Generate() (gen.Product[T], bool) {
	if !c.Active() {
		return gen.Depleted[T]()
	}

	p, ok := c.source.Generate()
	if !ok {
		return c.Deplete()
	}

	return c.YieldProduct(gen.WithValue(p, c.fn(p.Value)))
}

// Reset resets the wrapper and its source.
func (c *Convert[S, T]) Reset() {
	c.ResetSource()
}

// Close closes the wrapper and its source.
func (c *Convert[S, T]) Close() {
	c.CloseSource()
}
