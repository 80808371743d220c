package panels

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// inotifyPanel watches one file and renders its first line on every change.
// Useful for one-off scripts that can write a file easily.
type inotifyPanel struct {
	common
	path   string
	format string
}

func newInotify(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("panel %s: path is required", name)
	}
	format := cfg.Format
	if format == "" {
		format = "%file%"
	}
	return &inotifyPanel{common: c, path: cfg.Path, format: format}, nil
}

func (p *inotifyPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("panel %s: %w", p.name, err)
	}
	if err := watcher.Add(p.path); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("panel %s: watch %s: %w", p.name, p.path, err)
	}

	updates := make(chan bar.Update, 1)
	go func() {
		defer close(updates)
		defer watcher.Close()
		if !emit(ctx, updates, p.read(h)) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					// The file was swapped out, as editors do on save; the
					// old watch died with it.
					watcher.Add(p.path)
				}
				if !emit(ctx, updates, p.read(h)) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if !emit(ctx, updates, bar.Update{Err: err}) {
					return
				}
			}
		}
	}()
	return updates, nil, nil
}

// read renders the first line of the watched file.
func (p *inotifyPanel) read(h *render.Handle) bar.Update {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return bar.Update{Err: fmt.Errorf("read %s: %w", p.path, err)}
	}
	line, _, _ := strings.Cut(string(raw), "\n")
	text := strings.ReplaceAll(p.format, "%file%", strings.TrimSpace(line))
	return bar.Update{Info: p.textInfo(h, text)}
}
