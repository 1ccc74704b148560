package wrapper

import (
	"github.com/sarchlab/datagen/gen"
)

// Defaults of the Expand wrapper.
const (
	DefaultCacheSize  = 100
	DefaultBucketSize = 10
)

// Expand stretches the output of a small or expensive source. It keeps a
// cache of source products split into buckets and emits a random element of a
// random bucket, replacing it with a fresh source product. With a
// duplication quota q, an emitted element stays in its bucket with
// probability q. The wrapper depletes once the source is exhausted and the
// cache is drained.
type Expand[T any] struct {
	Base[T, T]

	cacheSize  int
	bucketSize int
	quota      float64
	unique     bool

	rnd     *gen.Random
	buckets [][]gen.Product[T]
}

// ExpandBuilder builds Expand wrappers.
type ExpandBuilder[T any] struct {
	source     gen.Generator[T]
	cacheSize  int
	bucketSize int
	quota      float64
	unique     bool
}

// MakeExpandBuilder returns a builder with the default cache and bucket sizes
// and no duplication.
func MakeExpandBuilder[T any]() ExpandBuilder[T] {
	return ExpandBuilder[T]{
		cacheSize:  DefaultCacheSize,
		bucketSize: DefaultBucketSize,
	}
}

// WithSource sets the source.
func (b ExpandBuilder[T]) WithSource(source gen.Generator[T]) ExpandBuilder[T] {
	b.source = source
	return b
}

// WithCacheSize sets the number of cached products.
func (b ExpandBuilder[T]) WithCacheSize(n int) ExpandBuilder[T] {
	b.cacheSize = n
	return b
}

// WithBucketSize sets the number of products per bucket.
func (b ExpandBuilder[T]) WithBucketSize(n int) ExpandBuilder[T] {
	b.bucketSize = n
	return b
}

// WithDuplicationQuota sets the probability in [0, 1) that an emitted
// product is kept for later emission.
func (b ExpandBuilder[T]) WithDuplicationQuota(q float64) ExpandBuilder[T] {
	b.quota = q
	return b
}

// WithUnique requires that products are never emitted twice.
func (b ExpandBuilder[T]) WithUnique(unique bool) ExpandBuilder[T] {
	b.unique = unique
	return b
}

// Build validates the configuration and creates the wrapper.
func (b ExpandBuilder[T]) Build(name string) (*Expand[T], error) {
	if err := gen.CheckName(name); err != nil {
		return nil, err
	}

	if err := checkSource(name, b.source); err != nil {
		return nil, err
	}

	switch {
	case b.cacheSize < 1:
		return nil, gen.NewConfigError(name, "cacheSize",
			"must be positive, got %d", b.cacheSize)
	case b.bucketSize < 1:
		return nil, gen.NewConfigError(name, "bucketSize",
			"must be positive, got %d", b.bucketSize)
	case b.quota < 0 || b.quota >= 1:
		return nil, gen.NewConfigError(name, "duplicationQuota",
			"%v is outside of [0, 1)", b.quota)
	case b.unique && b.quota > 0:
		return nil, gen.NewConfigError(name, "unique",
			"unique expansion does not allow duplication")
	}

	return &Expand[T]{
		Base:       MakeBase[T, T](name, b.source),
		cacheSize:  b.cacheSize,
		bucketSize: b.bucketSize,
		quota:      b.quota,
		unique:     b.unique,
	}, nil
}

// Init initializes the source and fills the cache.
func (e *Expand[T]) Init(ctx *gen.Context) error {
	if err := e.InitSource(ctx); err != nil {
		return err
	}

	e.rnd = ctx.NewRandom()
	e.fill()

	return nil
}

func (e *Expand[T]) fill() {
	n := (e.cacheSize + e.bucketSize - 1) / e.bucketSize
	e.buckets = make([][]gen.Product[T], n)

	for i := 0; i < e.cacheSize; i++ {
		p, ok := e.source.Generate()
		if !ok {
			break
		}

		b := i % n
		e.buckets[b] = append(e.buckets[b], p)
	}

	e.dropEmpty()
}

func (e *Expand[T]) dropEmpty() {
	kept := e.buckets[:0]

	for _, b := range e.buckets {
		if len(b) > 0 {
			kept = append(kept, b)
		}
	}

	e.buckets = kept
}

// Generate emits a random cached product.
func (e *Expand[T]) Generate() (gen.Product[T], bool) {
	if !e.Active() {
		return gen.Depleted[T]()
	}

	if len(e.buckets) == 0 {
		return e.Deplete()
	}

	b := e.rnd.IntN(len(e.buckets))
	bucket := e.buckets[b]
	i := e.rnd.IntN(len(bucket))
	p := bucket[i]

	if e.quota > 0 && e.rnd.Float64() < e.quota {
		return e.YieldProduct(p)
	}

	if next, ok := e.source.Generate(); ok {
		bucket[i] = next
	} else {
		bucket[i] = bucket[len(bucket)-1]
		e.buckets[b] = bucket[:len(bucket)-1]
		e.dropEmpty()
	}

	return e.YieldProduct(p)
}

// Reset resets the source and refills the cache.
func (e *Expand[T]) Reset() {
	e.ResetSource()
	e.rnd.Rewind()
	e.fill()
}

// Close closes the wrapper and its source.
func (e *Expand[T]) Close() {
	e.CloseSource()
}

// IsThreadSafe returns false.
func (e *Expand[T]) IsThreadSafe() bool {
	return false
}

// IsParallelizable returns true if the wrapper is not unique and the source
// is parallelizable.
func (e *Expand[T]) IsParallelizable() bool {
	return !e.unique && e.source.IsParallelizable()
}
