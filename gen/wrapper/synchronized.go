package wrapper

import (
	"sync"

	"github.com/sarchlab/datagen/gen"
)

// Synchronized serializes all calls to its source, which makes any generator
// safe for concurrent callers.
type Synchronized[T any] struct {
	Base[T, T]

	lock sync.Mutex
}

// NewSynchronized creates a synchronizing wrapper.
func NewSynchronized[T any](
	name string,
	source gen.Generator[T],
) (*Synchronized[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	return &Synchronized[T]{Base: MakeBase[T, T](name, source)}, nil
}

// Init initializes the wrapper and its source.
func (s *Synchronized[T]) Init(ctx *gen.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.InitSource(ctx)
}

// Generate forwards to the source under the lock.
func (s *Synchronized[T]) Generate() (gen.Product[T], bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.Active() {
		return gen.Depleted[T]()
	}

	p, ok := s.source.Generate()
	if !ok {
		return s.Deplete()
	}

	return s.YieldProduct(p)
}

// Reset resets the wrapper and its source under the lock.
func (s *Synchronized[T]) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.ResetSource()
}

// Close closes the wrapper and its source. It waits for an in-flight
// Generate to return.
func (s *Synchronized[T]) Close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.CloseSource()
}

// IsThreadSafe returns true.
func (s *Synchronized[T]) IsThreadSafe() bool {
	return true
}
