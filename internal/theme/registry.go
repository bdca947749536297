// Package theme holds the stylesheets of the visual templates. Templates only
// change appearance; the rendered structure is the same for all of them.
package theme

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"resume-maker/internal/domain"
)

//go:embed styles/*.css
var builtin embed.FS

const (
	baseSheet     = "base"
	debounceDelay = 250 * time.Millisecond
)

// Registry maps template identifiers to stylesheet contents. Built-in sheets
// are always loaded; a directory on disk may override or extend them.
type Registry struct {
	dir    string
	logger *slog.Logger

	mu     sync.RWMutex
	sheets map[string]string
}

// NewRegistry loads the built-in stylesheets and, when dir is non-empty, every
// *.css file below dir. A file's base name selects the template it styles.
func NewRegistry(dir string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{dir: dir, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload rereads all stylesheets.
func (r *Registry) Reload() error {
	sheets := map[string]string{}
	sub, err := fs.Sub(builtin, "styles")
	if err != nil {
		return err
	}
	if err := loadSheets(sub, sheets); err != nil {
		return fmt.Errorf("load builtin styles: %w", err)
	}
	if r.dir != "" {
		if _, err := os.Stat(r.dir); err == nil {
			if err := loadSheets(os.DirFS(r.dir), sheets); err != nil {
				return fmt.Errorf("load styles from %s: %w", r.dir, err)
			}
		} else {
			r.logger.Warn("Templates directory not readable, using built-in styles", "dir", r.dir, "error", err)
		}
	}

	r.mu.Lock()
	r.sheets = sheets
	r.mu.Unlock()
	return nil
}

func loadSheets(fsys fs.FS, into map[string]string) error {
	matches, err := doublestar.Glob(fsys, "**/*.css")
	if err != nil {
		return err
	}
	for _, m := range matches {
		b, err := fs.ReadFile(fsys, m)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(m), path.Ext(m))
		into[name] = string(b)
	}
	return nil
}

// Stylesheet returns the sheet of a template.
func (r *Registry) Stylesheet(id domain.TemplateID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sheets[string(id)]
	return s, ok
}

// Base returns the stylesheet shared by every template.
func (r *Registry) Base() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sheets[baseSheet]
}

// CSS assembles the complete stylesheet for a standalone document.
func (r *Registry) CSS(sel domain.TemplateSelection) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":root { --primary-color: %s; }\n", sel.AccentColor)
	b.WriteString(r.Base())
	if s, ok := r.Stylesheet(sel.Template); ok {
		b.WriteString("\n")
		b.WriteString(s)
	}
	return b.String()
}

// Watch reloads the registry whenever a stylesheet anywhere below dir
// changes, including in directories created after the watch started. It
// blocks until ctx is done.
func (r *Registry) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	if err := addTree(fsw, r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}
	r.logger.Info("Template watcher started", "dir", r.dir)

	ticker := time.NewTicker(debounceDelay)
	defer ticker.Stop()
	dirty := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fsw, ev.Name); err != nil {
						r.logger.Warn("Unable to watch new directory", "dir", ev.Name, "error", err)
					}
					dirty = true
					continue
				}
			}
			if strings.EqualFold(filepath.Ext(ev.Name), ".css") {
				dirty = true
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("Template watcher error", "error", err)
		case <-ticker.C:
			if !dirty {
				continue
			}
			dirty = false
			if err := r.Reload(); err != nil {
				r.logger.Error("Reload templates failed", "error", err)
				continue
			}
			r.logger.Info("Templates reloaded", "dir", r.dir)
		}
	}
}

// addTree watches root and every directory below it.
func addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fsw.Add(p)
	})
}
