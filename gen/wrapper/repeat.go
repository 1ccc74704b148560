package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Repeat emits every source product a random number of times in
// [MinCount, MaxCount]. A count of zero drops the product. The last
// repetition of each product carries the gen.TagLast tag.
type Repeat[T any] struct {
	Base[T, T]

	minCount, maxCount int

	rnd       *gen.Random
	current   gen.Product[T]
	remaining int
}

// NewRepeat creates a repeating wrapper.
func NewRepeat[T any](
	name string,
	source gen.Generator[T],
	minCount, maxCount int,
) (*Repeat[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	if minCount < 0 {
		return nil, gen.NewConfigError(name, "minCount",
			"must not be negative, got %d", minCount)
	}

	if maxCount < minCount {
		return nil, gen.NewConfigError(name, "maxCount",
			"%d is less than minCount %d", maxCount, minCount)
	}

	if maxCount == 0 {
		return nil, gen.NewConfigError(name, "maxCount",
			"must be positive, otherwise every product is dropped")
	}

	return &Repeat[T]{
		Base:     MakeBase[T, T](name, source),
		minCount: minCount,
		maxCount: maxCount,
	}, nil
}

// Init initializes the wrapper and its source.
func (r *Repeat[T]) Init(ctx *gen.Context) error {
	if err := r.InitSource(ctx); err != nil {
		return err
	}

	r.rnd = ctx.NewRandom()

	return nil
}

// Generate emits the current product again or advances the source.
func (r *Repeat[T]) Generate() (gen.Product[T], bool) {
	if !r.Active() {
		return gen.Depleted[T]()
	}

	for r.remaining == 0 {
		p, ok := r.source.Generate()
		if !ok {
			return r.Deplete()
		}

		r.current = p
		r.remaining = int(r.rnd.Int64Between(
			int64(r.minCount), int64(r.maxCount)))
	}

	r.remaining--

	if r.remaining == 0 {
		return r.YieldProduct(r.current.WithTag(gen.TagLast, "true"))
	}

	return r.YieldProduct(r.current)
}

// Reset resets the wrapper and its source.
func (r *Repeat[T]) Reset() {
	r.ResetSource()
	r.rnd.Rewind()
	r.remaining = 0
}

// Close closes the wrapper and its source.
func (r *Repeat[T]) Close() {
	r.CloseSource()
}

// IsParallelizable returns false if products may be repeated, since a
// repetition cannot be split between instances.
func (r *Repeat[T]) IsParallelizable() bool {
	return r.maxCount <= 1 && r.source.IsParallelizable()
}

// IsThreadSafe returns false. The repetition state is shared by all callers.
func (r *Repeat[T]) IsThreadSafe() bool {
	return false
}
