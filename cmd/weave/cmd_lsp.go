package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/lsp"
	"github.com/dhamidi/weave/project"
	"github.com/dhamidi/weave/rewrite"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdin/stdout. Without -C the project is
loaded from the workspace root the editor reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var engine *rewrite.Engine
			if cmd.Flags().Changed("directory") {
				p, err := project.LoadFrom(opts.dir)
				if err != nil {
					return err
				}
				engine = p.Engine()
			}
			server := lsp.NewServer(version, engine)
			return server.RunStdio()
		},
	}
}
