package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/weave/project"
	"github.com/dhamidi/weave/rewrite"
)

// fileResult is the outcome of rewriting one file.
type fileResult struct {
	path   string
	source []byte
	result *rewrite.Result
}

// javaFiles expands the command line paths. Without arguments it lists the
// project's source directories.
func javaFiles(p *project.Project, args []string) ([]string, error) {
	if len(args) == 0 {
		return p.JavaFiles()
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat: %w", err)
		}
		if !info.IsDir() {
			if ext := filepath.Ext(arg); ext != ".java" {
				return nil, fmt.Errorf("expected .java file, got %s", arg)
			}
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != arg && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && filepath.Ext(path) == ".java" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
	}
	return files, nil
}

// rewriteAll runs engine over files with at most jobs files in flight.
// Results keep the order of files.
func rewriteAll(ctx context.Context, engine *rewrite.Engine, files []string, jobs int) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range files {
		g.Go(func() error {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			res, err := engine.Rewrite(ctx, path, source)
			if err != nil {
				return fmt.Errorf("rewrite %s: %w", path, err)
			}
			log.Infof("%s: %d transformed in %d passes", path, res.Transformed, res.Passes)
			results[i] = fileResult{path: path, source: source, result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// outputPath maps a source file below the project root to the same relative
// path below outDir.
func outputPath(p *project.Project, outDir, path string) string {
	for _, dir := range p.SourceDirs() {
		if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.Join(outDir, rel)
		}
	}
	if rel, err := filepath.Rel(p.RootDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join(outDir, rel)
	}
	return filepath.Join(outDir, filepath.Base(path))
}

func writeOutput(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func countErrors(results []fileResult) int {
	n := 0
	for _, r := range results {
		for _, d := range r.result.Diagnostics {
			if d.Severity == rewrite.SeverityError {
				n++
			}
		}
	}
	return n
}
