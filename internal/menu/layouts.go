package menu

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"dashkit/internal/gui"
	"dashkit/internal/logging"
)

// DefaultDebounce is how long a layout file must stay unchanged before it
// is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// ParseLayouts reads a YAML mapping of page names ("module.function") to
// layouts in the format of gui.ParseLayout.
func ParseLayouts(data []byte) (map[string]*gui.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	out := make(map[string]*gui.Node)
	if doc.Kind == 0 {
		return out, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse layouts: line %d: expected a mapping of page names", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		raw, err := yaml.Marshal(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", name, err)
		}
		n, err := gui.ParseLayout(raw)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", name, err)
		}
		out[name] = n
	}
	return out, nil
}

// LoadLayouts reads and parses a layouts file.
func LoadLayouts(path string) (map[string]*gui.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	return ParseLayouts(data)
}

// LayoutWatcher reloads a layouts file when it changes on disk.
//
// The directory is watched rather than the file so editors that replace
// the file by rename are followed.
type LayoutWatcher struct {
	path     string
	debounce time.Duration
	onChange func(map[string]*gui.Node)
	logger   *logging.Logger
	watcher  *fsnotify.Watcher

	mu      sync.Mutex
	pending time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatchLayouts starts watching path. onChange runs on the watcher's
// goroutine with the freshly parsed layouts; callers hand it over to
// their event loop. Parse errors are logged and the change is skipped.
func WatchLayouts(ctx context.Context, path string, debounce time.Duration, logger *logging.Logger, onChange func(map[string]*gui.Node)) (*LayoutWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch layouts: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch layouts: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	ctx, cancel := context.WithCancel(ctx)
	lw := &LayoutWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		watcher:  w,
		ctx:      ctx,
		cancel:   cancel,
	}
	lw.wg.Add(2)
	go lw.processEvents()
	go lw.processPending()
	return lw, nil
}

// Close stops watching.
func (lw *LayoutWatcher) Close() error {
	lw.cancel()
	err := lw.watcher.Close()
	lw.wg.Wait()
	return err
}

func (lw *LayoutWatcher) processEvents() {
	defer lw.wg.Done()
	for {
		select {
		case <-lw.ctx.Done():
			return
		case ev, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != lw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				lw.mu.Lock()
				lw.pending = time.Now()
				lw.mu.Unlock()
			}
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			lw.logger.Warn("layout watcher", "error", err)
		}
	}
}

func (lw *LayoutWatcher) processPending() {
	defer lw.wg.Done()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-lw.ctx.Done():
			return
		case <-ticker.C:
			lw.mu.Lock()
			due := !lw.pending.IsZero() && time.Since(lw.pending) >= lw.debounce
			if due {
				lw.pending = time.Time{}
			}
			lw.mu.Unlock()
			if due {
				lw.reload()
			}
		}
	}
}

func (lw *LayoutWatcher) reload() {
	layouts, err := LoadLayouts(lw.path)
	if err != nil {
		lw.logger.Warn("layouts not reloaded", "path", lw.path, "error", err)
		return
	}
	lw.logger.Info("layouts reloaded", "path", lw.path, "pages", len(layouts))
	lw.onChange(layouts)
}
