package wrapper

import (
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// Alternative picks one of its sources uniformly at random for each product.
// Depleted sources drop out of the selection; the alternative depletes when
// no source is left.
type Alternative[T any] struct {
	gen.Base[T]

	sources []gen.Generator[T]
	unique  bool
	tracker *tracker

	rnd  *gen.Random
	live []int
}

// NewAlternative creates an alternative over the sources.
func NewAlternative[T any](
	name string,
	unique bool,
	sources ...gen.Generator[T],
) (*Alternative[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSources(name, sources); err != nil {
		return nil, err
	}

	return &Alternative[T]{
		Base:    gen.MakeBase[T](name),
		sources: append([]gen.Generator[T](nil), sources...),
		unique:  unique,
		tracker: newTracker(),
	}, nil
}

// Init initializes the alternative and its sources.
func (a *Alternative[T]) Init(ctx *gen.Context) error {
	if err := a.InitBase(ctx); err != nil {
		return err
	}

	if err := initSources(a.Name(), ctx, a.sources); err != nil {
		a.CloseBase()
		return err
	}

	a.rnd = ctx.NewRandom()
	a.revive()

	return nil
}

func (a *Alternative[T]) revive() {
	a.live = a.live[:0]
	for i := range a.sources {
		a.live = append(a.live, i)
	}
}

// Generate yields the product of a randomly chosen source.
func (a *Alternative[T]) Generate() (gen.Product[T], bool) {
	if !a.Active() {
		return gen.Depleted[T]()
	}

	duplicates := 0

	for len(a.live) > 0 {
		k := a.rnd.IntN(len(a.live))

		p, ok := a.sources[a.live[k]].Generate()
		if !ok {
			a.live = append(a.live[:k], a.live[k+1:]...)
			continue
		}

		if a.unique && !a.tracker.add(p.Value) {
			duplicates++
			if duplicates >= MaxDuplicateRun {
				a.Logger().Warn("too many duplicates, alternative depleted",
					logging.Generator(a.Name()),
					zap.Int(logging.FieldCount, duplicates))

				return a.Deplete()
			}

			continue
		}

		return a.YieldProduct(p)
	}

	return a.Deplete()
}

// Reset resets all sources and makes them selectable again.
func (a *Alternative[T]) Reset() {
	a.ResetBase()
	resetSources(a.sources)
	a.tracker.clear()
	a.rnd.Rewind()
	a.revive()
}

// Close closes the alternative and its sources.
func (a *Alternative[T]) Close() {
	if a.CloseBase() {
		closeSources(a.sources)
	}
}

// IsThreadSafe returns false.
func (a *Alternative[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true if the alternative is not unique and all
// sources are parallelizable.
func (a *Alternative[T]) IsParallelizable() bool {
	return !a.unique && allParallelizable(a.sources)
}
