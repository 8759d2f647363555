package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/weave/handler"
	"github.com/dhamidi/weave/rewrite"
)

// ConfigFile is looked up in the project root.
const ConfigFile = "weave.yaml"

var log = commonlog.GetLogger("weave.project")

// Config is the content of weave.yaml. Every field is optional.
type Config struct {
	SourceDirs []string          `yaml:"sourceDirs"`
	MaxPasses  int               `yaml:"maxPasses"`
	Indent     string            `yaml:"indent"`
	Dispatcher DispatcherConfig  `yaml:"dispatcher"`
	Aliases    map[string]string `yaml:"aliases"`
}

type DispatcherConfig struct {
	Class string `yaml:"class"`
	Guard string `yaml:"guard"`
}

func DefaultConfig() Config {
	return Config{
		SourceDirs: []string{"src"},
		MaxPasses:  rewrite.DefaultMaxPasses,
		Dispatcher: DispatcherConfig{
			Class: handler.EventQueue.Class,
			Guard: handler.EventQueue.Guard,
		},
		Aliases: map[string]string{},
	}
}

// Project is a directory of Java sources to rewrite.
type Project struct {
	RootDir string
	Config  Config

	// ConfigPath is the configuration file read, or "" when defaults apply.
	ConfigPath string
}

// Load reads the project in the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads rootDir/weave.yaml if it exists and fills in defaults for
// everything it leaves out.
func LoadFrom(rootDir string) (*Project, error) {
	p := &Project{RootDir: rootDir, Config: DefaultConfig()}

	path := filepath.Join(rootDir, ConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("no %s in %s, using defaults", ConfigFile, rootDir)
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p.Config = cfg
	p.ConfigPath = path
	return p, nil
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	defaults := DefaultConfig()
	if len(cfg.SourceDirs) == 0 {
		cfg.SourceDirs = defaults.SourceDirs
	}
	if cfg.MaxPasses == 0 {
		cfg.MaxPasses = defaults.MaxPasses
	}
	if cfg.Dispatcher.Class == "" {
		cfg.Dispatcher.Class = defaults.Dispatcher.Class
	}
	if cfg.Dispatcher.Guard == "" {
		cfg.Dispatcher.Guard = defaults.Dispatcher.Guard
	}
	if cfg.Aliases == nil {
		cfg.Aliases = defaults.Aliases
	}

	if cfg.MaxPasses < 0 {
		return Config{}, fmt.Errorf("maxPasses must be positive, got %d", cfg.MaxPasses)
	}
	if strings.Trim(cfg.Indent, " \t") != "" {
		return Config{}, fmt.Errorf("indent may only contain spaces and tabs, got %q", cfg.Indent)
	}
	for written, qualified := range cfg.Aliases {
		if !strings.Contains(qualified, ".") {
			return Config{}, fmt.Errorf("alias %s: %q is not a qualified name", written, qualified)
		}
	}
	return cfg, nil
}

// SourceDirs returns the configured source directories relative to the
// working directory.
func (p *Project) SourceDirs() []string {
	dirs := make([]string, len(p.Config.SourceDirs))
	for i, dir := range p.Config.SourceDirs {
		if filepath.IsAbs(dir) {
			dirs[i] = dir
			continue
		}
		dirs[i] = filepath.Join(p.RootDir, dir)
	}
	return dirs
}

// JavaFiles lists the .java files below the source directories in lexical
// order. Hidden directories are skipped.
func (p *Project) JavaFiles() ([]string, error) {
	var files []string
	for _, dir := range p.SourceDirs() {
		found, err := javaFiles(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func javaFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	return files, nil
}

func (p *Project) Dispatcher() handler.Dispatcher {
	return handler.Dispatcher{Class: p.Config.Dispatcher.Class, Guard: p.Config.Dispatcher.Guard}
}

// Registry returns the handlers available to the project.
func (p *Project) Registry() *handler.Registry {
	return handler.DefaultRegistry(rewrite.Passes(), p.Dispatcher())
}

// Engine returns a rewrite engine configured for the project.
func (p *Project) Engine() *rewrite.Engine {
	return rewrite.New(p.Registry(),
		rewrite.WithMaxPasses(p.Config.MaxPasses),
		rewrite.WithIndentUnit(p.Config.Indent),
		rewrite.WithAliases(p.Config.Aliases))
}
