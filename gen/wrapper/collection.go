package wrapper

import (
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/gen/naming"
	"github.com/sarchlab/datagen/gen/sequence"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// DefaultMaxCollectionSize is the upper size bound used when none is set.
const DefaultMaxCollectionSize = 10

// Collection produces slices of source products. The size of every slice is
// drawn from a number generator over [minSize, maxSize] that follows a
// sequence. A unique collection holds distinct elements. The collection
// depletes when the size generator does or when the source runs out in the
// middle of a collection.
type Collection[T any] struct {
	Base[T, []T]

	sizes   *sequence.NumberGenerator[int]
	unique  bool
	tracker *tracker
}

// CollectionBuilder builds Collection generators.
type CollectionBuilder[T any] struct {
	source           gen.Generator[T]
	minSize, maxSize int
	sizeSequence     sequence.Sequence
	unique           bool
}

// MakeCollectionBuilder returns a builder for collections of uniformly
// distributed sizes between 0 and DefaultMaxCollectionSize.
func MakeCollectionBuilder[T any]() CollectionBuilder[T] {
	return CollectionBuilder[T]{
		maxSize:      DefaultMaxCollectionSize,
		sizeSequence: sequence.Weighted{},
	}
}

// WithSource sets the element source.
func (b CollectionBuilder[T]) WithSource(
	source gen.Generator[T],
) CollectionBuilder[T] {
	b.source = source
	return b
}

// WithSizeRange sets the size bounds, both inclusive.
func (b CollectionBuilder[T]) WithSizeRange(min, max int) CollectionBuilder[T] {
	b.minSize = min
	b.maxSize = max

	return b
}

// WithSizeSequence sets the distribution of the sizes.
func (b CollectionBuilder[T]) WithSizeSequence(
	seq sequence.Sequence,
) CollectionBuilder[T] {
	b.sizeSequence = seq
	return b
}

// WithUnique makes the elements within one collection distinct.
func (b CollectionBuilder[T]) WithUnique(unique bool) CollectionBuilder[T] {
	b.unique = unique
	return b
}

// Build validates the configuration and creates the generator.
func (b CollectionBuilder[T]) Build(name string) (*Collection[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, b.source); err != nil {
		return nil, err
	}

	if b.minSize < 0 {
		return nil, gen.NewConfigError(name, "minSize",
			"must not be negative, got %d", b.minSize)
	}

	sizes, err := sequence.CreateNumberGenerator(
		naming.BuildName(name, "Size"),
		b.sizeSequence, b.minSize, b.maxSize, 1, false)
	if err != nil {
		return nil, err
	}

	return &Collection[T]{
		Base:    MakeBase[T, []T](name, b.source),
		sizes:   sizes,
		unique:  b.unique,
		tracker: newTracker(),
	}, nil
}

// Init initializes the size generator and the source.
func (c *Collection[T]) Init(ctx *gen.Context) error {
	if err := c.InitSource(ctx); err != nil {
		return err
	}

	if err := c.sizes.Init(ctx); err != nil {
		c.CloseSource()
		return err
	}

	return nil
}

// Generate creates the next collection.
func (c *Collection[T]) Generate() (gen.Product[[]T], bool) {
	if !c.Active() {
		return gen.Depleted[[]T]()
	}

	size, ok := c.sizes.Generate()
	if !ok {
		return c.Deplete()
	}

	c.tracker.clear()

	elements := make([]T, 0, size.Value)
	duplicates := 0

	for len(elements) < size.Value {
		p, ok := c.source.Generate()
		if !ok {
			return c.Deplete()
		}

		if c.unique && !c.tracker.add(p.Value) {
			duplicates++
			if duplicates >= MaxDuplicateRun {
				c.Logger().Warn("too many duplicates, collection depleted",
					logging.Generator(c.Name()),
					zap.Int(logging.FieldSize, size.Value))

				return c.Deplete()
			}

			continue
		}

		elements = append(elements, p.Value)
	}

	return c.Yield(elements)
}

// Reset resets the sizes and the source.
func (c *Collection[T]) Reset() {
	c.ResetSource()
	c.sizes.Reset()
}

// Close closes the generator, its source and its size generator.
func (c *Collection[T]) Close() {
	c.CloseSource()
	c.sizes.Close()
}

// IsThreadSafe returns false.
func (c *Collection[T]) IsThreadSafe() bool {
	return false
}
