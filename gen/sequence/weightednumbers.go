package sequence

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen/sample"
)

// WeightedNumbers creates a generator from a spec like "0^0,1^3,2^2,3^1",
// a comma-separated list of values each with an optional weight after a
// caret. Values without a weight weigh one.
func WeightedNumbers[N Number](
	name string,
	spec string,
) (*sample.WeightedSample[N], error) {
	entries, err := ParseWeightedNumbers[N](spec)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	return sample.NewWeightedSample(name, entries...)
}

// ParseWeightedNumbers parses a weighted number spec.
func ParseWeightedNumbers[N Number](spec string) ([]sample.Weighted[N], error) {
	var entries []sample.Weighted[N]

	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		valueText, weightText, hasWeight := strings.Cut(field, "^")

		value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
		if err != nil {
			return nil, configError("spec", "%q is not a number", valueText)
		}

		weight := 1.0
		if hasWeight {
			weight, err = strconv.ParseFloat(strings.TrimSpace(weightText), 64)
			if err != nil {
				return nil, configError("spec", "%q is not a weight", weightText)
			}
		}

		entries = append(entries, sample.Weighted[N]{
			Value:  N(value),
			Weight: weight,
		})
	}

	return entries, nil
}
