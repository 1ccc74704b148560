package wrapper

import (
	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// Unique drops the products its source has produced before.
type Unique[T any] struct {
	Base[T, T]

	tracker *tracker
}

// NewUnique creates a deduplicating wrapper.
func NewUnique[T any](name string, source gen.Generator[T]) (*Unique[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	return &Unique[T]{
		Base:    MakeBase[T, T](name, source),
		tracker: newTracker(),
	}, nil
}

// Init initializes the wrapper and its source.
func (u *Unique[T]) Init(ctx *gen.Context) error {
	return u.InitSource(ctx)
}

// Generate yields the next product that was not seen before.
func (u *Unique[T]) Generate() (gen.Product[T], bool) {
	if !u.Active() {
		return gen.Depleted[T]()
	}

	for duplicates := 0; duplicates < MaxDuplicateRun; duplicates++ {
		p, ok := u.source.Generate()
		if !ok {
			return u.Deplete()
		}

		if u.tracker.add(p.Value) {
			return u.YieldProduct(p)
		}
	}

	u.Logger().Warn("too many duplicates, source considered depleted",
		logging.Generator(u.Name()),
		zap.Int(logging.FieldCount, MaxDuplicateRun))

	return u.Deplete()
}

// Reset forgets the seen products and resets the source.
func (u *Unique[T]) Reset() {
	u.ResetSource()
	u.tracker.clear()
}

// Close closes the wrapper and its source.
func (u *Unique[T]) Close() {
	u.CloseSource()
}

// IsThreadSafe returns false.
func (u *Unique[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns false.
func (u *Unique[T]) IsParallelizable() bool {
	return false
}
