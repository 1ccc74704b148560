package sample

import "github.com/sarchlab/datagen/gen"

// Sample draws values from a list. Without uniqueness it picks uniformly at
// random forever. With uniqueness it yields a random permutation of the list
// and then depletes.
type Sample[T any] struct {
	gen.Base[T]

	values []T
	unique bool

	rnd      *gen.Random
	permuted []T
	cursor   int
}

// Builder builds Sample generators.
type Builder[T any] struct {
	values []T
	unique bool
}

// MakeBuilder returns a builder for a sample generator without values.
func MakeBuilder[T any]() Builder[T] {
	return Builder[T]{}
}

// WithValues sets the candidate values.
func (b Builder[T]) WithValues(values ...T) Builder[T] {
	b.values = append([]T(nil), values...)
	return b
}

// WithUnique makes the generator yield every candidate exactly once.
func (b Builder[T]) WithUnique(unique bool) Builder[T] {
	b.unique = unique
	return b
}

// Build creates the generator.
func (b Builder[T]) Build(name string) (*Sample[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	return &Sample[T]{
		Base:   gen.MakeBase[T](name),
		values: b.values,
		unique: b.unique,
	}, nil
}

// Init makes the generator available.
func (g *Sample[T]) Init(ctx *gen.Context) error {
	if err := g.InitBase(ctx); err != nil {
		return err
	}

	g.rnd = ctx.NewRandom()
	g.permute()

	return nil
}

func (g *Sample[T]) permute() {
	g.cursor = 0

	if !g.unique {
		return
	}

	g.permuted = append(g.permuted[:0], g.values...)
	g.rnd.Shuffle(len(g.permuted), func(i, j int) {
		g.permuted[i], g.permuted[j] = g.permuted[j], g.permuted[i]
	})
}

// Generate yields the next sampled value.
func (g *Sample[T]) Generate() (gen.Product[T], bool) {
	if !g.Active() {
		return gen.Depleted[T]()
	}

	if !g.unique {
		if len(g.values) == 0 {
			return g.Deplete()
		}

		return g.Yield(g.values[g.rnd.IntN(len(g.values))])
	}

	if g.cursor >= len(g.permuted) {
		return g.Deplete()
	}

	v := g.permuted[g.cursor]
	g.cursor++

	return g.Yield(v)
}

// Reset replays the same random choices as after Init.
func (g *Sample[T]) Reset() {
	g.ResetBase()
	g.rnd.Rewind()
	g.permute()
}

// Close closes the generator.
func (g *Sample[T]) Close() {
	g.CloseBase()
}

// IsThreadSafe returns false.
func (g *Sample[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns false for unique samples.
func (g *Sample[T]) IsParallelizable() bool {
	return !g.unique
}
