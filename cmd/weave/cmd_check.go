package main

import (
	"fmt"
	"runtime"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/project"
	"github.com/dhamidi/weave/rewrite"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var (
		asJSON bool
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report misplaced annotations without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadFrom(opts.dir)
			if err != nil {
				return err
			}
			files, err := javaFiles(p, args)
			if err != nil {
				return err
			}
			results, err := rewriteAll(cmd.Context(), p.Engine(), files, jobs)
			if err != nil {
				return err
			}

			diagnostics := []rewrite.Diagnostic{}
			for _, r := range results {
				diagnostics = append(diagnostics, r.result.Diagnostics...)
				if opts.verbosity > 0 {
					diagnostics = append(diagnostics, r.result.Deferred...)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(diagnostics, "", "  ")
				if err != nil {
					return fmt.Errorf("encode diagnostics: %w", err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				for _, d := range diagnostics {
					fmt.Fprintln(out, d)
				}
			}

			if n := countErrors(results); n > 0 {
				return fmt.Errorf("%d annotation errors", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print diagnostics as a JSON array")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files processed in parallel")

	return cmd
}
