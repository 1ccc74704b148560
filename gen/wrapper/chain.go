package wrapper

import (
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// Chain concatenates sources. A source is used until it depletes, then the
// next one takes over. A unique chain drops every value that any source has
// produced before.
type Chain[T any] struct {
	gen.Base[T]

	sources []gen.Generator[T]
	unique  bool
	tracker *tracker
	current int
}

// NewChain creates a chain over the sources in the given order.
func NewChain[T any](
	name string,
	unique bool,
	sources ...gen.Generator[T],
) (*Chain[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSources(name, sources); err != nil {
		return nil, err
	}

	return &Chain[T]{
		Base:    gen.MakeBase[T](name),
		sources: append([]gen.Generator[T](nil), sources...),
		unique:  unique,
		tracker: newTracker(),
	}, nil
}

// Sources returns the links of the chain.
func (c *Chain[T]) Sources() []gen.Generator[T] {
	return append([]gen.Generator[T](nil), c.sources...)
}

// Init initializes the chain and its sources.
func (c *Chain[T]) Init(ctx *gen.Context) error {
	if err := c.InitBase(ctx); err != nil {
		return err
	}

	if err := initSources(c.Name(), ctx, c.sources); err != nil {
		c.CloseBase()
		return err
	}

	return nil
}

// Generate yields the next product of the current link.
func (c *Chain[T]) Generate() (gen.Product[T], bool) {
	if !c.Active() {
		return gen.Depleted[T]()
	}

	duplicates := 0

	for c.current < len(c.sources) {
		p, ok := c.sources[c.current].Generate()
		if !ok {
			c.current++
			continue
		}

		if c.unique && !c.tracker.add(p.Value) {
			duplicates++
			if duplicates >= MaxDuplicateRun {
				c.Logger().Warn("too many duplicates, chain depleted",
					logging.Generator(c.Name()),
					zap.Int(logging.FieldCount, duplicates))

				return c.Deplete()
			}

			continue
		}

		return c.YieldProduct(p)
	}

	return c.Deplete()
}

// Reset restarts the chain with its first link.
func (c *Chain[T]) Reset() {
	c.ResetBase()
	resetSources(c.sources)
	c.tracker.clear()
	c.current = 0
}

// Close closes the chain and its sources.
func (c *Chain[T]) Close() {
	if c.CloseBase() {
		closeSources(c.sources)
	}
}

// IsThreadSafe returns false.
func (c *Chain[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true if the chain is not unique and all links are
// parallelizable.
func (c *Chain[T]) IsParallelizable() bool {
	return !c.unique && allParallelizable(c.sources)
}
