package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Array combines one product of every source into a slice.
//
// A non-unique array draws one product from each source per call and
// depletes as soon as any source does. A unique array enumerates the
// cartesian product of the sources like an odometer, the last source
// varying fastest. It resets a source when it runs out and advances the
// source before it, and depletes once the first source is exhausted. Tuples
// seen before are skipped, so every tuple is emitted at most once.
type Array[T any] struct {
	gen.Base[[]T]

	sources []gen.Generator[T]
	unique  bool
	tracker *tracker

	current []T
	started bool
}

// NewArray creates an array generator over the sources.
func NewArray[T any](
	name string,
	unique bool,
	sources ...gen.Generator[T],
) (*Array[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, gen.NewConfigError(name, "source",
			"an array needs at least one source")
	}

	if err := checkSources(name, sources); err != nil {
		return nil, err
	}

	return &Array[T]{
		Base:    gen.MakeBase[[]T](name),
		sources: append([]gen.Generator[T](nil), sources...),
		unique:  unique,
		tracker: newTracker(),
		current: make([]T, len(sources)),
	}, nil
}

// Init initializes the array and its sources.
func (a *Array[T]) Init(ctx *gen.Context) error {
	if err := a.InitBase(ctx); err != nil {
		return err
	}

	if err := initSources(a.Name(), ctx, a.sources); err != nil {
		a.CloseBase()
		return err
	}

	return nil
}

// Generate yields the next tuple.
func (a *Array[T]) Generate() (gen.Product[[]T], bool) {
	if !a.Active() {
		return gen.Depleted[[]T]()
	}

	if !a.unique {
		if !a.pullAll() {
			return a.Deplete()
		}

		return a.Yield(a.snapshot())
	}

	for {
		var ok bool
		if a.started {
			ok = a.advance()
		} else {
			a.started = true
			ok = a.pullAll()
		}

		if !ok {
			return a.Deplete()
		}

		tuple := a.snapshot()
		if a.tracker.add(tuple) {
			return a.Yield(tuple)
		}
	}
}

func (a *Array[T]) pullAll() bool {
	for i, s := range a.sources {
		p, ok := s.Generate()
		if !ok {
			return false
		}

		a.current[i] = p.Value
	}

	return true
}

// advance moves the odometer by one position.
func (a *Array[T]) advance() bool {
	for i := len(a.sources) - 1; i >= 0; i-- {
		s := a.sources[i]

		if p, ok := s.Generate(); ok {
			a.current[i] = p.Value
			return true
		}

		if i == 0 {
			return false
		}

		s.Reset()

		p, ok := s.Generate()
		if !ok {
			return false
		}

		a.current[i] = p.Value
	}

	return false
}

func (a *Array[T]) snapshot() []T {
	return append([]T(nil), a.current...)
}

// Reset resets the array and its sources.
func (a *Array[T]) Reset() {
	a.ResetBase()
	resetSources(a.sources)
	a.tracker.clear()
	a.started = false
}

// Close closes the array and its sources.
func (a *Array[T]) Close() {
	if a.CloseBase() {
		closeSources(a.sources)
	}
}

// IsThreadSafe returns false.
func (a *Array[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true if the array is not unique and all sources
// are parallelizable.
func (a *Array[T]) IsParallelizable() bool {
	return !a.unique && allParallelizable(a.sources)
}
