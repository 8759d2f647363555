package project

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls the source directories of a project and reports .java
// files that appeared, changed or disappeared since the previous scan.
type Watcher struct {
	dirs         []string
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	onChange func(path string)
	onRemove func(path string)
}

func NewWatcher(p *Project, onChange, onRemove func(path string)) *Watcher {
	return &Watcher{
		dirs:         p.SourceDirs(),
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		onChange:     onChange,
		onRemove:     onRemove,
	}
}

// SetInterval changes the polling interval. Call it before Start.
func (w *Watcher) SetInterval(d time.Duration) {
	w.pollInterval = d
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan runs one poll synchronously. The first scan reports every file as
// changed.
func (w *Watcher) Scan() {
	currentFiles := make(map[string]bool)

	for _, dir := range w.dirs {
		filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != dir && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".java" {
				return nil
			}

			currentFiles[path] = true

			lastMod, known := w.modTimes[path]
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
				log.Debugf("changed: %s", path)
				if w.onChange != nil {
					w.onChange(path)
				}
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			log.Debugf("removed: %s", path)
			if w.onRemove != nil {
				w.onRemove(path)
			}
		}
	}
}
