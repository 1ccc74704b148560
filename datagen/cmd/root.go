// Package cmd provides the command-line interface of datagen.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Execute runs the root command and exits with a non-zero status on failure.
// Registered exit handlers, such as recorder flushes, run either way.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

// NewRootCommand creates the datagen command tree.
func NewRootCommand() *cobra.Command {
	a := newApp()

	rootCmd := &cobra.Command{
		Use:   "datagen",
		Short: "datagen generates synthetic data from composable generators.",
		Long: `datagen generates synthetic data from composable generators. ` +
			`It can emit numbers drawn through the built-in index sequences, ` +
			`weighted samples, UUIDs and persistent local ids. Settings are ` +
			`read from flags, DATAGEN_* environment variables, a .env file ` +
			`and datagen.yaml. Runs made with --record can be read back with ` +
			`the recording command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.sync()
		},
	}

	rootCmd.SetErr(os.Stderr)
	a.registerFlags(rootCmd)

	rootCmd.AddCommand(
		newSequencesCommand(a),
		newNumbersCommand(a),
		newWeightedCommand(a),
		newUUIDCommand(a),
		newLocalCommand(a),
		newRecordingCommand(a),
	)

	return rootCmd
}
