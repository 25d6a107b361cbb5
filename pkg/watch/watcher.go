package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called with the configuration files that changed during
// one debounce window, sorted by path.
type ChangeFunc func(ctx context.Context, paths []string) error

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the file or directory to watch
	Path string

	// Debounce is the quiet period to wait after the last event before
	// calling the change function (default: 100ms)
	Debounce time.Duration

	// Extensions is the list of file extensions to watch (e.g., ".yaml", ".yml")
	Extensions []string

	// SkipHidden controls whether to skip hidden files and directories
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration for path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:       path,
		Debounce:   100 * time.Millisecond,
		Extensions: []string{".yaml", ".yml"},
		SkipHidden: true,
	}
}

// FileWatcher watches configuration files for changes and reports them in
// debounced batches.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// file is set when Path names a single file; its directory is watched
	// so that editors replacing the file are still seen.
	file string

	mu      sync.Mutex
	running bool
	pending map[string]struct{}
	stopCh  chan struct{}
	stopped sync.Once
}

// NewFileWatcher creates a new file watcher.
func NewFileWatcher(config *Config, logger *slog.Logger) (*FileWatcher, error) {
	if config == nil || config.Path == "" {
		return nil, errors.New("watch path is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default().With("component", "watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		pending:  make(map[string]struct{}),
		stopCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, calling onChange
// after every burst of relevant file events. Errors from onChange are
// logged and do not stop the watcher.
func (fw *FileWatcher) Watch(ctx context.Context, onChange ChangeFunc) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return errors.New("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.debounce.Stop()
		fw.watcher.Close()
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
	}()

	if err := fw.addPath(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("File watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}

			if event.Op.Has(fsnotify.Create) && fw.file == "" {
				fw.watchNewDirectory(event.Name)
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			fw.mu.Lock()
			fw.pending[event.Name] = struct{}{}
			fw.mu.Unlock()

			fw.debounce.Trigger(func() {
				paths := fw.drain()
				if len(paths) == 0 {
					return
				}
				fw.logger.Info("Configuration files changed", "count", len(paths))
				if err := onChange(ctx, paths); err != nil {
					fw.logger.Error("Re-validation failed", "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// Stop stops a running watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() {
	fw.stopped.Do(func() { close(fw.stopCh) })
}

// drain returns and clears the paths collected since the last call.
func (fw *FileWatcher) drain() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	paths := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		paths = append(paths, p)
	}
	clear(fw.pending)
	slices.Sort(paths)
	return paths
}

// addPath adds a file or directory to the watcher.
func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fw.addDirectory(path)
	}

	fw.file = filepath.Clean(path)
	return fw.watcher.Add(filepath.Dir(fw.file))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fw.isHidden(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("Watching directory", "path", path)
		return nil
	})
}

// watchNewDirectory starts watching a directory created after Watch began.
func (fw *FileWatcher) watchNewDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || fw.isHidden(path) {
		return
	}
	if err := fw.addDirectory(path); err != nil {
		fw.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	}
}

// shouldProcessEvent determines if an event concerns a configuration file.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	if fw.file != "" {
		return filepath.Clean(event.Name) == fw.file
	}

	if !fw.hasValidExtension(strings.ToLower(filepath.Ext(event.Name))) {
		return false
	}

	return !fw.isHidden(event.Name)
}

// hasValidExtension checks if a file extension should be watched.
func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, validExt := range fw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

func (fw *FileWatcher) isHidden(path string) bool {
	return fw.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}
