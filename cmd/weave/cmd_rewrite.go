package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/project"
)

func newRewriteCmd(opts *globalOptions) *cobra.Command {
	var (
		overwrite bool
		outDir    string
		diff      bool
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "rewrite [path...]",
		Short: "Expand annotated methods in .java files",
		Long: `Expand the handled annotations of the given .java files or directories.

Without paths, every .java file below the project's source directories is
processed. A single file is printed to stdout unless one of -w, -o or -d
selects another output.

Usage errors are printed to stderr and make the command fail; the files
are still written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.LoadFrom(opts.dir)
			if err != nil {
				return err
			}
			files, err := javaFiles(p, args)
			if err != nil {
				return err
			}
			toStdout := !overwrite && outDir == "" && !diff
			if toStdout && len(files) != 1 {
				return fmt.Errorf("%d files to rewrite: use -w, -o or -d", len(files))
			}

			results, err := rewriteAll(cmd.Context(), p.Engine(), files, jobs)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			for _, r := range results {
				for _, d := range r.result.Diagnostics {
					fmt.Fprintln(cmd.ErrOrStderr(), d)
				}
				switch {
				case toStdout:
					if _, err := stdout.Write(r.result.Source); err != nil {
						return err
					}
				case diff:
					if err := writeDiff(stdout, r); err != nil {
						return err
					}
				}
				if overwrite && r.result.Changed() {
					if err := os.WriteFile(r.path, r.result.Source, 0644); err != nil {
						return fmt.Errorf("write file: %w", err)
					}
				}
				if outDir != "" {
					if err := writeOutput(outputPath(p, outDir, r.path), r.result.Source); err != nil {
						return err
					}
				}
			}

			if n := countErrors(results); n > 0 {
				return fmt.Errorf("%d annotation errors", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite changed files in place")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "write every file below this directory")
	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "print a unified diff of the changes")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "files processed in parallel")

	return cmd
}

func writeDiff(w io.Writer, r fileResult) error {
	if !r.result.Changed() {
		return nil
	}
	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.source)),
		B:        difflib.SplitLines(string(r.result.Source)),
		FromFile: "a/" + r.path,
		ToFile:   "b/" + r.path,
		Context:  3,
	})
}
