package sequence

import (
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen"
)

// Number is the set of types number generators produce.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberGenerator produces numbers of the progression min, min+g, ..., max in
// the order of a sequence.
type NumberGenerator[N Number] struct {
	gen.Base[N]

	seq         Sequence
	min, max    N
	granularity N
	unique      bool
	size        int64
	values      []float64

	rnd    *gen.Random
	cursor Cursor
}

// NumberGeneratorBuilder builds number generators.
type NumberGeneratorBuilder[N Number] struct {
	seq         Sequence
	min, max    N
	granularity N
	unique      bool
}

// MakeNumberGeneratorBuilder returns a builder for uniformly distributed
// numbers between zero and zero with granularity one.
func MakeNumberGeneratorBuilder[N Number]() NumberGeneratorBuilder[N] {
	return NumberGeneratorBuilder[N]{
		seq:         Weighted{},
		granularity: 1,
	}
}

// WithSequence sets the visitation order.
func (b NumberGeneratorBuilder[N]) WithSequence(
	seq Sequence,
) NumberGeneratorBuilder[N] {
	b.seq = seq
	return b
}

// WithRange sets the bounds, both inclusive.
func (b NumberGeneratorBuilder[N]) WithRange(min, max N) NumberGeneratorBuilder[N] {
	b.min = min
	b.max = max

	return b
}

// WithGranularity sets the distance between neighboring values.
func (b NumberGeneratorBuilder[N]) WithGranularity(
	granularity N,
) NumberGeneratorBuilder[N] {
	b.granularity = granularity
	return b
}

// WithUnique requests that no value is produced twice.
func (b NumberGeneratorBuilder[N]) WithUnique(unique bool) NumberGeneratorBuilder[N] {
	b.unique = unique
	return b
}

// Build validates the configuration and creates the generator.
func (b NumberGeneratorBuilder[N]) Build(name string) (*NumberGenerator[N], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if b.seq == nil {
		return nil, gen.NewConfigError(name, "distribution", "must not be nil")
	}

	if b.granularity <= 0 {
		return nil, gen.NewConfigError(name, "granularity",
			"must be positive, got %v", b.granularity)
	}

	if b.max < b.min {
		return nil, gen.NewConfigError(name, "max",
			"%v is less than min %v", b.max, b.min)
	}

	size, ok := progressionSize(b.min, b.max, b.granularity)
	if !ok {
		return nil, gen.NewConfigError(name, "max",
			"range [%v, %v] holds too many values", b.min, b.max)
	}

	g := &NumberGenerator[N]{
		Base:        gen.MakeBase[N](name),
		seq:         b.seq,
		min:         b.min,
		max:         b.max,
		granularity: b.granularity,
		unique:      b.unique,
		size:        size,
	}

	if err := g.validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// CreateNumberGenerator creates a generator of numbers in [min, max] with the
// given granularity, visited in the order of seq.
func CreateNumberGenerator[N Number](
	name string,
	seq Sequence,
	min, max, granularity N,
	unique bool,
) (*NumberGenerator[N], error) {
	return MakeNumberGeneratorBuilder[N]().
		WithSequence(seq).
		WithRange(min, max).
		WithGranularity(granularity).
		WithUnique(unique).
		Build(name)
}

// validate creates a throw-away cursor so that configuration errors of the
// sequence surface at construction.
func (g *NumberGenerator[N]) validate() error {
	if p, ok := g.seq.(Predefined); ok {
		g.values = p.values()

		if g.unique {
			return errors.Wrap(p.checkUnique(), g.Name())
		}

		return nil
	}

	_, err := g.seq.NewCursor(g.size, g.unique, gen.NewSeededRandom(0))

	return errors.Wrap(err, g.Name())
}

// progressionSize counts the values of the progression. The span is taken in
// 64 bits so that narrow types do not wrap. It reports false if the count does
// not fit an int64.
func progressionSize[N Number](min, max, granularity N) (int64, bool) {
	if isFloat[N]() {
		span := (float64(max) - float64(min)) / float64(granularity)
		steps := math.Floor(span + 1e-9)

		if steps >= math.MaxInt64 {
			return 0, false
		}

		return int64(steps) + 1, true
	}

	var span uint64
	if isSigned[N]() {
		span = uint64(int64(max)) - uint64(int64(min))
	} else {
		span = uint64(max) - uint64(min)
	}

	steps := span / uint64(granularity)
	if steps >= math.MaxInt64 {
		return 0, false
	}

	return int64(steps) + 1, true
}

func isSigned[N Number]() bool {
	switch reflect.TypeFor[N]().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isFloat[N Number]() bool {
	k := reflect.TypeFor[N]().Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

// Sequence returns the visitation order.
func (g *NumberGenerator[N]) Sequence() Sequence {
	return g.seq
}

// Size returns the number of values in the progression.
func (g *NumberGenerator[N]) Size() int64 {
	return g.size
}

// Init creates the cursor.
func (g *NumberGenerator[N]) Init(ctx *gen.Context) error {
	if err := g.InitBase(ctx); err != nil {
		return err
	}

	g.rnd = ctx.NewRandom()

	if g.values != nil {
		g.cursor = &stepCursor{size: int64(len(g.values)), delta: 1}
		return nil
	}

	c, err := g.seq.NewCursor(g.size, g.unique, g.rnd)
	if err != nil {
		g.CloseBase()
		return errors.Wrap(err, g.Name())
	}

	g.cursor = c

	return nil
}

// Generate produces the next number.
func (g *NumberGenerator[N]) Generate() (gen.Product[N], bool) {
	if !g.Active() {
		return gen.Depleted[N]()
	}

	i, ok := g.cursor.Next()
	if !ok {
		return g.Deplete()
	}

	if g.values != nil {
		return g.Yield(N(g.values[i]))
	}

	return g.Yield(g.valueAt(i))
}

// valueAt maps an index to its value. Integer values are computed in 64 bits
// and wrap back into N, which is exact because the result lies in the range.
func (g *NumberGenerator[N]) valueAt(i int64) N {
	switch {
	case isFloat[N]():
		return g.min + N(i)*g.granularity
	case isSigned[N]():
		return N(int64(g.min) + i*int64(g.granularity))
	default:
		return N(uint64(g.min) + uint64(i)*uint64(g.granularity))
	}
}

// Reset restarts the sequence. Random sequences replay the same numbers.
func (g *NumberGenerator[N]) Reset() {
	g.ResetBase()
	g.rnd.Rewind()
	g.cursor.Reset()
}

// Close closes the generator.
func (g *NumberGenerator[N]) Close() {
	g.CloseBase()
}

// IsThreadSafe returns false.
func (g *NumberGenerator[N]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true unless the numbers must be unique.
func (g *NumberGenerator[N]) IsParallelizable() bool {
	return !g.unique
}
