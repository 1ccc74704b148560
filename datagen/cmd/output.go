package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

func writeValues[T any](w io.Writer, format string, values []T) error {
	if values == nil {
		values = []T{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(values), "write json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(values); err != nil {
			return errors.Wrap(err, "write yaml")
		}

		return errors.Wrap(enc.Close(), "write yaml")
	default:
		for _, v := range values {
			if _, err := fmt.Fprintln(w, v); err != nil {
				return errors.Wrap(err, "write values")
			}
		}

		return nil
	}
}
