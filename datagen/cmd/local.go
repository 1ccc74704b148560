package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/sarchlab/datagen/gen/local"
	"github.com/spf13/cobra"
)

func newLocalCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Emit ids of a persistent local sequence.",
		Long: `Emit ids of a sequence kept in a bbolt file. Ids handed out ` +
			`by one run are never handed out again by a later run that uses ` +
			`the same store and counter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := a.v

			if a.cfg.Count == 0 {
				return errors.New("local sequences never deplete, set --count")
			}

			store, err := local.OpenStore(v.GetString("store"))
			if err != nil {
				return err
			}
			defer store.Close()

			g, err := local.MakeSequenceBuilder().
				WithStore(store).
				WithCounter(v.GetString("counter")).
				WithStart(v.GetInt64("start")).
				WithBlockSize(v.GetInt64("block-size")).
				Build(v.GetString("name"))
			if err != nil {
				return err
			}

			return emit[int64](cmd, a, g)
		},
	}

	f := cmd.Flags()
	f.String("name", "Id", "name of the generator")
	f.String("store", "datagen.db", "path of the store")
	f.String("counter", "", "counter in the store (default the name)")
	f.Int64("start", 1, "first id of a new counter")
	f.Int64("block-size", local.DefaultBlockSize, "ids reserved per store access")

	return cmd
}
