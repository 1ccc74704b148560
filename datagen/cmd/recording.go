package cmd

import (
	"context"

	"github.com/sarchlab/datagen/datarecording"
	"github.com/spf13/cobra"
)

func newRecordingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recording FILE",
		Short: "Read back a recording made with --record.",
		Long: `Summarize the generators found in a recording database. With ` +
			`--generator, emit the recorded values of that generator instead, ` +
			`at most --count of them starting at --offset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecording(cmd, a, args[0])
		},
	}

	f := cmd.Flags()
	f.String("generator", "", "emit the values recorded for this generator")
	f.Int("offset", 0, "number of recorded values to skip")

	return cmd
}

func runRecording(cmd *cobra.Command, a *app, filename string) error {
	reader, err := datarecording.Open(filename)
	if err != nil {
		return err
	}
	defer reader.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	generator := a.v.GetString("generator")
	if generator == "" {
		summaries, err := reader.Summaries(ctx)
		if err != nil {
			return err
		}

		return writeValues(out, a.cfg.Format, summaries)
	}

	products, _, err := reader.Products(ctx, datarecording.ProductQuery{
		Generator: generator,
		Limit:     a.cfg.Count,
		Offset:    a.v.GetInt("offset"),
	})
	if err != nil {
		return err
	}

	values := make([]string, 0, len(products))
	for _, p := range products {
		values = append(values, p.Value)
	}

	return writeValues(out, a.cfg.Format, values)
}
