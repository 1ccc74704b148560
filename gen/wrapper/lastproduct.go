package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// LastProductDetector looks one product ahead and tags the final product of
// its source with gen.TagLast.
type LastProductDetector[T any] struct {
	Base[T, T]

	next    gen.Product[T]
	hasNext bool
	primed  bool
}

// NewLastProductDetector creates a detector.
func NewLastProductDetector[T any](
	name string,
	source gen.Generator[T],
) (*LastProductDetector[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, source); err != nil {
		return nil, err
	}

	return &LastProductDetector[T]{Base: MakeBase[T, T](name, source)}, nil
}

// Init initializes the detector and its source.
func (d *LastProductDetector[T]) Init(ctx *gen.Context) error {
	return d.InitSource(ctx)
}

func (d *LastProductDetector[T]) advance() {
	d.next, d.hasNext = d.source.Generate()
}

// Generate yields the product fetched ahead and fetches the following one.
func (d *LastProductDetector[T]) Generate() (gen.Product[T], bool) {
	if !d.Active() {
		return gen.Depleted[T]()
	}

	if !d.primed {
		d.primed = true
		d.advance()
	}

	if !d.hasNext {
		return d.Deplete()
	}

	p := d.next
	d.advance()

	if !d.hasNext {
		p = p.WithTag(gen.TagLast, "true")
	}

	return d.YieldProduct(p)
}

// Reset resets the detector and its source.
func (d *LastProductDetector[T]) Reset() {
	d.ResetSource()
	d.primed = false
	d.hasNext = false
}

// Close closes the detector and its source.
func (d *LastProductDetector[T]) Close() {
	d.CloseSource()
}

// IsThreadSafe returns false.
func (d *LastProductDetector[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns false since only one instance can see the end of
// the source.
func (d *LastProductDetector[T]) IsParallelizable() bool {
	return false
}
