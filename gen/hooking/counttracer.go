package hooking

import (
	"sync"
)

// ProductCountTracer counts, per generator name, how many products were
// generated and how many times the generator was depleted and reset.
type ProductCountTracer struct {
	lock sync.Mutex

	names    []string
	products map[string]uint64
	depleted map[string]uint64
	resets   map[string]uint64
}

// NewProductCountTracer creates a new ProductCountTracer.
func NewProductCountTracer() *ProductCountTracer {
	return &ProductCountTracer{
		products: make(map[string]uint64),
		depleted: make(map[string]uint64),
		resets:   make(map[string]uint64),
	}
}

// Func records the hook invocation.
func (t *ProductCountTracer) Func(ctx HookCtx) {
	name := DomainName(ctx)

	t.lock.Lock()
	defer t.lock.Unlock()

	switch ctx.Pos {
	case HookPosInit:
		t.register(name)
	case HookPosGenerate:
		t.register(name)
		t.products[name]++
	case HookPosDeplete:
		t.register(name)
		t.depleted[name]++
	case HookPosReset:
		t.register(name)
		t.resets[name]++
	}
}

func (t *ProductCountTracer) register(name string) {
	if _, ok := t.products[name]; ok {
		return
	}

	t.names = append(t.names, name)
	t.products[name] = 0
}

// GeneratorNames returns the names of all the generators observed, in the
// order they were first seen.
func (t *ProductCountTracer) GeneratorNames() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// ProductCount returns the number of products a generator emitted.
func (t *ProductCountTracer) ProductCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.products[name]
}

// DepletionCount returns how often a generator reported depletion.
func (t *ProductCountTracer) DepletionCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.depleted[name]
}

// ResetCount returns how often a generator was reset.
func (t *ProductCountTracer) ResetCount(name string) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.resets[name]
}
