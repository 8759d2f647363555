package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("weave.cli")

type globalOptions struct {
	verbosity int
	dir       string
}

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:           "weave",
		Short:         "Rewrite annotated Java methods into plain Java",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "directory", "C", ".", "project root directory")

	rootCmd.AddCommand(newRewriteCmd(&opts))
	rootCmd.AddCommand(newCheckCmd(&opts))
	rootCmd.AddCommand(newWatchCmd(&opts))
	rootCmd.AddCommand(newLSPCmd(&opts))
	rootCmd.AddCommand(newHandlersCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
