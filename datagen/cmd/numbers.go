package cmd

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen/sequence"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const predefinedName = "predefined"

func newNumbersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numbers",
		Short: "Emit numbers in a range, visited in the order of a distribution.",
		Long: `Emit numbers between --min and --max in steps of --granularity. ` +
			`The distribution decides the order in which the values are ` +
			`visited; see the sequences command for the accepted names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNumbers(cmd, a)
		},
	}

	f := cmd.Flags()
	f.String("name", "Numbers", "name of the generator")
	f.StringP("distribution", "d", "random", "visitation order")
	f.Float64("min", 0, "lowest value")
	f.Float64("max", 9, "highest value")
	f.Float64("granularity", 1, "distance between neighboring values")
	f.BoolP("unique", "u", false, "never emit a value twice")
	f.Bool("float", false, "emit floating point numbers")

	f.Int64("delta", 0, "step: distance between visited indices")
	f.Int64("increment", 0, "shuffle: stride of the interleaving")
	f.Int("terms", 0, "cumulated: number of summed draws")
	f.Int64("min-step", 0, "randomwalk: smallest step")
	f.Int64("max-step", 0, "randomwalk: largest step")
	f.Int64("initial", 0, "randomwalk: first index")
	f.String("weights", "", "weighted: comma-separated weight per index")
	f.Int64("min-count", 0, "repeat: fewest repetitions of an index")
	f.Int64("max-count", 0, "repeat: most repetitions of an index")
	f.Int64("size", 0, "head: number of leading indices")
	f.String("values", "", "predefined: comma-separated values")

	return cmd
}

func runNumbers(cmd *cobra.Command, a *app) error {
	v := a.v

	seq, err := buildSequence(v, sequence.NewRegistry())
	if err != nil {
		return err
	}

	name := v.GetString("name")
	unique := v.GetBool("unique")

	if v.GetBool("float") {
		g, err := sequence.MakeNumberGeneratorBuilder[float64]().
			WithSequence(seq).
			WithRange(v.GetFloat64("min"), v.GetFloat64("max")).
			WithGranularity(v.GetFloat64("granularity")).
			WithUnique(unique).
			Build(name)
		if err != nil {
			return err
		}

		return emit[float64](cmd, a, g)
	}

	g, err := sequence.MakeNumberGeneratorBuilder[int64]().
		WithSequence(seq).
		WithRange(int64(v.GetFloat64("min")), int64(v.GetFloat64("max"))).
		WithGranularity(int64(v.GetFloat64("granularity"))).
		WithUnique(unique).
		Build(name)
	if err != nil {
		return err
	}

	return emit[int64](cmd, a, g)
}

// buildSequence creates the sequence named by the distribution setting.
// Sequences with parameters take them from their own settings; everything
// else comes from the registry.
func buildSequence(v *viper.Viper, r *sequence.Registry) (sequence.Sequence, error) {
	name := v.GetString("distribution")

	switch name {
	case "step":
		return sequence.Step{Delta: v.GetInt64("delta")}, nil
	case "shuffle":
		return sequence.Shuffle{Increment: v.GetInt64("increment")}, nil
	case "cumulated":
		return sequence.Cumulated{Terms: v.GetInt("terms")}, nil
	case "randomwalk":
		w := sequence.RandomWalk{
			MinStep: v.GetInt64("min-step"),
			MaxStep: v.GetInt64("max-step"),
		}

		if v.IsSet("initial") {
			initial := v.GetInt64("initial")
			w.Initial = &initial
		}

		return w, nil
	case "random", "weighted":
		weights, err := parseFloats(v.GetString("weights"))
		if err != nil {
			return nil, errors.Wrap(err, "weights")
		}

		return sequence.Weighted{Weights: weights}, nil
	case "repeat":
		return sequence.Repeat{
			MinCount: v.GetInt64("min-count"),
			MaxCount: v.GetInt64("max-count"),
		}, nil
	case "head":
		return sequence.Head{Size: v.GetInt64("size")}, nil
	case predefinedName:
		return sequence.Literal(v.GetString("values"))
	default:
		return r.Lookup(name)
	}
}

func parseFloats(list string) ([]float64, error) {
	var values []float64

	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Newf("%q is not a number", field)
		}

		values = append(values, f)
	}

	return values, nil
}
