package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/project"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		outDir   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite source files into a directory whenever they change",
		Long: `Poll the project's source directories and mirror every .java file,
rewritten, below the output directory. Removed sources are removed from the
output. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return errors.New("watch requires -o")
			}
			p, err := project.LoadFrom(opts.dir)
			if err != nil {
				return err
			}
			engine := p.Engine()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			onChange := func(path string) {
				source, err := os.ReadFile(path)
				if err != nil {
					log.Errorf("read file: %s", err)
					return
				}
				res, err := engine.Rewrite(ctx, path, source)
				if err != nil {
					log.Errorf("rewrite %s: %s", path, err)
					return
				}
				for _, d := range res.Diagnostics {
					fmt.Fprintln(cmd.ErrOrStderr(), d)
				}
				if err := writeOutput(outputPath(p, outDir, path), res.Source); err != nil {
					log.Errorf("%s", err)
					return
				}
				log.Infof("%s: %d transformed", path, res.Transformed)
			}
			onRemove := func(path string) {
				if err := os.Remove(outputPath(p, outDir, path)); err != nil && !errors.Is(err, os.ErrNotExist) {
					log.Errorf("remove output: %s", err)
				}
			}

			w := project.NewWatcher(p, onChange, onRemove)
			w.SetInterval(interval)
			w.Start()
			defer w.Stop()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory receiving the rewritten files")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval")

	return cmd
}
