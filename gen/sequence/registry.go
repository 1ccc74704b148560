package sequence

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// A Factory creates a sequence with its default settings.
type Factory func() Sequence

// A Registry maps distribution names to sequences. The zero value is not
// usable; create registries with NewRegistry.
type Registry struct {
	lock      sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry that knows the built-in sequences.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	for _, f := range []Factory{
		func() Sequence { return Step{} },
		func() Sequence { return Shuffle{} },
		func() Sequence { return Wedge{} },
		func() Sequence { return BitReverse{} },
		func() Sequence { return RandomWalk{} },
		func() Sequence { return Cumulated{} },
		func() Sequence { return Weighted{} },
		func() Sequence { return Repeat{} },
		func() Sequence { return Head{} },
	} {
		r.factories[f().Name()] = f
	}

	return r
}

// Register adds a sequence under the name it reports. It returns an error if
// the name is taken.
func (r *Registry) Register(f Factory) error {
	name := f().Name()

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, found := r.factories[name]; found {
		return errors.Newf("sequence %q is already registered", name)
	}

	r.factories[name] = f

	return nil
}

// Lookup creates the sequence registered under name.
func (r *Registry) Lookup(name string) (Sequence, error) {
	r.lock.RLock()
	f, found := r.factories[name]
	r.lock.RUnlock()

	if !found {
		return nil, configError("distribution", "unknown sequence %q", name)
	}

	return f(), nil
}

// Names lists the registered names in alphabetical order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
