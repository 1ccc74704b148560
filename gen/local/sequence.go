package local

import (
	"sync"

	"github.com/sarchlab/datagen/gen"
	"github.com/sarchlab/datagen/logging"
	"go.uber.org/zap"
)

// DefaultBlockSize is the number of ids a sequence reserves at once.
const DefaultBlockSize = 100

// Sequence generates ids from a persistent counter. It reserves blocks of ids
// in the store and hands them out in ascending order. Ids are never issued
// twice, not even after Reset; Close gives the unused rest of the block back
// if no other instance reserved ids in between.
type Sequence struct {
	gen.Base[int64]

	store     *Store
	counter   string
	start     int64
	blockSize int64

	lock sync.Mutex
	next int64
	end  int64
}

// SequenceBuilder builds Sequences.
type SequenceBuilder struct {
	store     *Store
	counter   string
	start     int64
	blockSize int64
}

// MakeSequenceBuilder returns a builder for sequences that start at 1 and
// reserve DefaultBlockSize ids at once.
func MakeSequenceBuilder() SequenceBuilder {
	return SequenceBuilder{
		start:     1,
		blockSize: DefaultBlockSize,
	}
}

// WithStore sets the store that keeps the counter.
func (b SequenceBuilder) WithStore(store *Store) SequenceBuilder {
	b.store = store
	return b
}

// WithCounter sets the name of the counter. It defaults to the generator
// name.
func (b SequenceBuilder) WithCounter(counter string) SequenceBuilder {
	b.counter = counter
	return b
}

// WithStart sets the first id of a new counter.
func (b SequenceBuilder) WithStart(start int64) SequenceBuilder {
	b.start = start
	return b
}

// WithBlockSize sets the number of ids reserved at once.
func (b SequenceBuilder) WithBlockSize(n int64) SequenceBuilder {
	b.blockSize = n
	return b
}

// Build creates the sequence.
func (b SequenceBuilder) Build(name string) (*Sequence, error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, gen.NewConfigError(name, "store", "must not be nil")
	}

	if b.blockSize < 1 {
		return nil, gen.NewConfigError(name, "blockSize",
			"must be positive, got %d", b.blockSize)
	}

	counter := b.counter
	if counter == "" {
		counter = name
	}

	return &Sequence{
		Base:      gen.MakeBase[int64](name),
		store:     b.store,
		counter:   counter,
		start:     b.start,
		blockSize: b.blockSize,
	}, nil
}

// Init makes the sequence available. Ids are reserved on demand.
func (s *Sequence) Init(ctx *gen.Context) error {
	return s.InitBase(ctx)
}

// Generate hands out the next id.
func (s *Sequence) Generate() (gen.Product[int64], bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.Active() {
		return gen.Depleted[int64]()
	}

	if s.next >= s.end {
		first, err := s.store.Reserve(s.counter, s.start, s.blockSize)
		if err != nil {
			s.Logger().Error("cannot reserve ids",
				logging.Generator(s.Name()),
				zap.String(logging.FieldSequence, s.counter),
				zap.Error(err))

			return s.Deplete()
		}

		s.next = first
		s.end = first + s.blockSize
	}

	id := s.next
	s.next++

	return s.Yield(id)
}

// Reset makes a depleted sequence available again. The counter is not
// rewound.
func (s *Sequence) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.ResetBase()
}

// Close returns the unused ids of the current block.
func (s *Sequence) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.CloseBase() || s.next >= s.end {
		return
	}

	if err := s.store.Release(s.counter, s.next, s.end); err != nil {
		s.Logger().Warn("cannot release ids",
			logging.Generator(s.Name()),
			zap.String(logging.FieldSequence, s.counter),
			zap.Error(err))
	}
}

// IsThreadSafe returns true.
func (s *Sequence) IsThreadSafe() bool {
	return true
}

// IsParallelizable returns true. Instances sharing a store reserve disjoint
// blocks.
func (s *Sequence) IsParallelizable() bool {
	return true
}
