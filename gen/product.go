package gen

// TagLast marks the last product of a group, e.g. the final repetition of a
// repeated value or the final product of a stream.
const TagLast = "last"

// A Product is one generated value plus side-channel tags. A zero Value (for
// example a nil pointer) is a legitimate product.
type Product[T any] struct {
	Value T

	tags map[string]string
}

// MakeProduct wraps a value into a product without tags.
func MakeProduct[T any](v T) Product[T] {
	return Product[T]{Value: v}
}

// Depleted is the result returned by Generate when no product is available.
func Depleted[T any]() (Product[T], bool) {
	return Product[T]{}, false
}

// Tag returns the value of a tag.
func (p Product[T]) Tag(key string) (string, bool) {
	v, ok := p.tags[key]
	return v, ok
}

// HasTag tells whether the product carries a tag.
func (p Product[T]) HasTag(key string) bool {
	_, ok := p.tags[key]
	return ok
}

// Tags returns a copy of all the tags.
func (p Product[T]) Tags() map[string]string {
	tags := make(map[string]string, len(p.tags))
	for k, v := range p.tags {
		tags[k] = v
	}

	return tags
}

// WithTag returns a copy of the product that carries the tag in addition.
func (p Product[T]) WithTag(key, value string) Product[T] {
	tags := p.Tags()
	tags[key] = value

	return Product[T]{Value: p.Value, tags: tags}
}

// WithValue returns a product with another value and the same tags.
func WithValue[S, T any](p Product[S], v T) Product[T] {
	return Product[T]{Value: v, tags: p.tags}
}
