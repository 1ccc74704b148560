package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Skip emits a source product and then drops a random number of products in
// [MinIncrement, MaxIncrement] before emitting the next one. With a positive
// limit, the wrapper depletes after that many emissions.
type Skip[T any] struct {
	Base[T, T]

	minIncrement, maxIncrement int64
	limit                      int64

	rnd     *gen.Random
	emitted int64
}

// SkipBuilder builds Skip wrappers.
type SkipBuilder[T any] struct {
	source                     gen.Generator[T]
	minIncrement, maxIncrement int64
	limit                      int64
}

// MakeSkipBuilder returns a builder that skips nothing and has no limit.
func MakeSkipBuilder[T any]() SkipBuilder[T] {
	return SkipBuilder[T]{}
}

// WithSource sets the source.
func (b SkipBuilder[T]) WithSource(source gen.Generator[T]) SkipBuilder[T] {
	b.source = source
	return b
}

// WithIncrement sets the range of skipped products.
func (b SkipBuilder[T]) WithIncrement(min, max int64) SkipBuilder[T] {
	b.minIncrement = min
	b.maxIncrement = max

	return b
}

// WithLimit sets the maximum number of emissions. Zero means no limit.
func (b SkipBuilder[T]) WithLimit(limit int64) SkipBuilder[T] {
	b.limit = limit
	return b
}

// Build validates the configuration and creates the wrapper.
func (b SkipBuilder[T]) Build(name string) (*Skip[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, b.source); err != nil {
		return nil, err
	}

	switch {
	case b.minIncrement < 0:
		return nil, gen.NewConfigError(name, "minIncrement",
			"must not be negative, got %d", b.minIncrement)
	case b.maxIncrement < b.minIncrement:
		return nil, gen.NewConfigError(name, "maxIncrement",
			"%d is less than minIncrement %d", b.maxIncrement, b.minIncrement)
	case b.limit < 0:
		return nil, gen.NewConfigError(name, "limit",
			"must not be negative, got %d", b.limit)
	}

	return &Skip[T]{
		Base:         MakeBase[T, T](name, b.source),
		minIncrement: b.minIncrement,
		maxIncrement: b.maxIncrement,
		limit:        b.limit,
	}, nil
}

// Init initializes the wrapper and its source.
func (s *Skip[T]) Init(ctx *gen.Context) error {
	if err := s.InitSource(ctx); err != nil {
		return err
	}

	s.rnd = ctx.NewRandom()

	return nil
}

// Generate skips products of the source and emits the next one.
func (s *Skip[T]) Generate() (gen.Product[T], bool) {
	if !s.Active() {
		return gen.Depleted[T]()
	}

	if s.limit > 0 && s.emitted >= s.limit {
		return s.Deplete()
	}

	if s.emitted > 0 {
		n := s.rnd.Int64Between(s.minIncrement, s.maxIncrement)
		for i := int64(0); i < n; i++ {
			if _, ok := s.source.Generate(); !ok {
				return s.Deplete()
			}
		}
	}

	p, ok := s.source.Generate()
	if !ok {
		return s.Deplete()
	}

	s.emitted++

	return s.YieldProduct(p)
}

// Reset resets the wrapper and its source.
func (s *Skip[T]) Reset() {
	s.ResetSource()
	s.rnd.Rewind()
	s.emitted = 0
}

// Close closes the wrapper and its source.
func (s *Skip[T]) Close() {
	s.CloseSource()
}

// IsThreadSafe returns false.
func (s *Skip[T]) IsThreadSafe() bool {
	return false
}
