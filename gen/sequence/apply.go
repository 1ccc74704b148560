package sequence

import (
	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen"
)

// MaxBufferSize limits how many products ApplyTo takes from a source that
// does not deplete.
const MaxBufferSize = 1 << 20

// Sequenced replays the products of a source generator in the order of a
// sequence. At Init the source is drained into a buffer, a Head sequence
// only takes as many products as it will emit.
type Sequenced[T any] struct {
	gen.Base[T]

	seq    Sequence
	source gen.Generator[T]
	unique bool

	buffer []gen.Product[T]
	rnd    *gen.Random
	cursor Cursor
}

// ApplyTo creates a generator that reorders the products of source.
func ApplyTo[T any](
	name string,
	seq Sequence,
	source gen.Generator[T],
	unique bool,
) (*Sequenced[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if seq == nil {
		return nil, gen.NewConfigError(name, "distribution", "must not be nil")
	}

	if source == nil {
		return nil, gen.NewConfigError(name, "source", "must not be nil")
	}

	return &Sequenced[T]{
		Base:   gen.MakeBase[T](name),
		seq:    seq,
		source: source,
		unique: unique,
	}, nil
}

// Source returns the reordered generator.
func (g *Sequenced[T]) Source() gen.Generator[T] {
	return g.source
}

// Init initializes the source if necessary and buffers its products.
func (g *Sequenced[T]) Init(ctx *gen.Context) error {
	if err := g.InitBase(ctx); err != nil {
		return err
	}

	if g.source.State() == gen.StateCreated {
		if err := g.source.Init(ctx); err != nil {
			g.CloseBase()
			return errors.Wrapf(err, "%s: init source", g.Name())
		}
	}

	g.rnd = ctx.NewRandom()
	g.fill()

	c, err := g.seq.NewCursor(int64(len(g.buffer)), g.unique, g.rnd)
	if err != nil {
		g.CloseBase()
		return errors.Wrap(err, g.Name())
	}

	g.cursor = c

	return nil
}

func (g *Sequenced[T]) fill() {
	limit := int64(MaxBufferSize)
	if h, ok := g.seq.(Head); ok {
		limit = h.limit()
	}

	g.buffer = g.buffer[:0]

	for int64(len(g.buffer)) < limit {
		p, ok := g.source.Generate()
		if !ok {
			break
		}

		g.buffer = append(g.buffer, p)
	}
}

// Generate yields the buffered product at the next index of the sequence.
func (g *Sequenced[T]) Generate() (gen.Product[T], bool) {
	if !g.Active() {
		return gen.Depleted[T]()
	}

	i, ok := g.cursor.Next()
	if !ok {
		return g.Deplete()
	}

	return g.YieldProduct(g.buffer[i])
}

// Reset restarts the sequence over the same buffered products.
func (g *Sequenced[T]) Reset() {
	g.ResetBase()
	g.rnd.Rewind()
	g.cursor.Reset()
}

// Close closes the generator and its source.
func (g *Sequenced[T]) Close() {
	if g.CloseBase() {
		g.source.Close()
	}
}

// IsThreadSafe returns false.
func (g *Sequenced[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true unless the output must be unique.
func (g *Sequenced[T]) IsParallelizable() bool {
	return !g.unique
}
