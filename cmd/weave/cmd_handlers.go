package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/project"
)

func newHandlersCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List the annotations weave rewrites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadFrom(opts.dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range p.Registry().Names() {
				fmt.Fprintln(out, name)
			}
			for _, written := range slices.Sorted(maps.Keys(p.Config.Aliases)) {
				fmt.Fprintf(out, "%s -> %s\n", written, p.Config.Aliases[written])
			}
			return nil
		},
	}
}
