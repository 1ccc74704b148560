package sequence

import (
	"math"
	"strconv"
	"strings"

	"github.com/sarchlab/datagen/gen"
)

// Predefined yields a fixed list of values. A number generator emits the
// values as they are and ignores its range. Applied to a source generator,
// the values are taken as indices into the buffered products.
type Predefined struct {
	Values []float64
}

// Literal parses a comma-separated list of numbers such as "1, 3.5, 2".
func Literal(spec string) (Predefined, error) {
	var values []float64

	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Predefined{}, configError("values",
				"%q is not a number", field)
		}

		values = append(values, v)
	}

	return Predefined{Values: values}, nil
}

// Name returns "predefined".
func (s Predefined) Name() string {
	return "predefined"
}

func (s Predefined) values() []float64 {
	return s.Values
}

func (s Predefined) checkUnique() error {
	seen := make(map[float64]bool, len(s.Values))
	for _, v := range s.Values {
		if seen[v] {
			return configError("unique", "value %v is listed twice", v)
		}

		seen[v] = true
	}

	return nil
}

// NewCursor creates a cursor over the values taken as indices. Every value
// must be an integer in [0, size).
func (s Predefined) NewCursor(
	size int64,
	unique bool,
	_ *gen.Random,
) (Cursor, error) {
	if unique {
		if err := s.checkUnique(); err != nil {
			return nil, err
		}
	}

	indices := make([]int64, len(s.Values))

	for i, v := range s.Values {
		if v != math.Trunc(v) || v < 0 || v >= float64(size) {
			return nil, configError("values",
				"%v is not an index in [0, %d)", v, size)
		}

		indices[i] = int64(v)
	}

	return &listCursor{indices: indices}, nil
}

type listCursor struct {
	indices []int64
	next    int
}

func (c *listCursor) Next() (int64, bool) {
	if c.next >= len(c.indices) {
		return 0, false
	}

	c.next++

	return c.indices[c.next-1], true
}

func (c *listCursor) Reset() {
	c.next = 0
}
