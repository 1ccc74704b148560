package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Proxy forwards every call to its source. The source can be replaced until
// the proxy is initialized, which allows choosing a fallback after a failed
// construction.
type Proxy[T any] struct {
	Base[T, T]
}

// NewProxy creates a proxy. The source may be nil and set later.
func NewProxy[T any](name string, source gen.Generator[T]) (*Proxy[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	return &Proxy[T]{Base: MakeBase[T, T](name, source)}, nil
}

// SetSource replaces the source. It panics once the proxy is initialized.
func (p *Proxy[T]) SetSource(source gen.Generator[T]) {
	if p.State() != gen.StateCreated {
		panic(gen.NewStateError(p.Name(),
			"source replaced in state %s", p.State()))
	}

	p.source = source
}

// Init initializes the proxy and its source.
func (p *Proxy[T]) Init(ctx *gen.Context) error {
	if err := checkSource(p.Name(), p.source); err != nil {
		return err
	}

	return p.InitSource(ctx)
}

// Generate forwards to the source.
func (p *Proxy[T]) Generate() (gen.Product[T], bool) {
	if !p.Active() {
		return gen.Depleted[T]()
	}

	v, ok := p.source.Generate()
	if !ok {
		return p.Deplete()
	}

	return p.YieldProduct(v)
}

// Reset resets the proxy and its source.
func (p *Proxy[T]) Reset() {
	p.ResetSource()
}

// Close closes the proxy and its source.
func (p *Proxy[T]) Close() {
	p.CloseSource()
}
