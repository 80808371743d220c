package panels

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// common is the config surface every kind shares: identity, visibility, the
// dependence tag carried on each draw descriptor, the attrs table, the
// optional width cap, and the mouse action table.
type common struct {
	name       string
	visible    bool
	dependence bar.Dependence
	maxWidth   int
	actions    config.Actions
	attrs      render.Attrs
}

func newCommon(name string, cfg config.Panel, attrs render.Attrs) (common, error) {
	dependence, err := bar.ParseDependence(cfg.Dependence)
	if err != nil {
		return common{}, fmt.Errorf("panel %s: %w", name, err)
	}
	return common{
		name:       name,
		visible:    cfg.IsVisible(),
		dependence: dependence,
		maxWidth:   cfg.MaxWidth,
		actions:    cfg.Actions,
		attrs:      attrs,
	}, nil
}

// Props implements the identity half of bar.Producer.
func (c *common) Props() (string, bool) { return c.name, c.visible }

// textInfo builds a one-row draw descriptor for text styled with the panel's
// attrs. Text wider than max_width is truncated with an ellipsis.
func (c *common) textInfo(h *render.Handle, text string) *bar.DrawInfo {
	text = h.Truncate(text, c.maxWidth)
	style := c.attrs.Cell()
	return &bar.DrawInfo{
		Width:      h.Measure(text),
		Height:     1,
		Dependence: c.dependence,
		Draw: func(f *render.Frame, x, y float64) error {
			f.DrawText(x, y, text, style)
			return nil
		},
	}
}

// action resolves a routed event to the action string the panel should run:
// IPC payloads pass through, mouse buttons go through the actions table. An
// unconfigured button resolves to "".
func (c *common) action(ev bar.Event) string {
	switch e := ev.(type) {
	case bar.ActionEvent:
		return string(e)
	case bar.MouseEvent:
		switch e.Button {
		case bar.MouseLeft:
			return c.actions.ClickLeft
		case bar.MouseMiddle:
			return c.actions.ClickMiddle
		case bar.MouseRight:
			return c.actions.ClickRight
		case bar.MouseScrollUp:
			return c.actions.ScrollUp
		case bar.MouseScrollDown:
			return c.actions.ScrollDown
		}
	}
	return ""
}

// emit delivers one update unless the bar is shutting down.
func emit(ctx context.Context, updates chan<- bar.Update, u bar.Update) bool {
	select {
	case updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}

// intervalOr converts a config interval in seconds, falling back to the
// kind's default when the key is absent.
func intervalOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// pollGate pauses a poller while its panel is hidden. The draw descriptor's
// show/hide hooks flip the gate; show also nudges the wake channel so the
// panel repaints without waiting out its interval.
type pollGate struct {
	mu     sync.Mutex
	paused bool
	wake   chan struct{}
}

func newPollGate() *pollGate {
	return &pollGate{wake: make(chan struct{}, 1)}
}

func (g *pollGate) hide() error {
	g.mu.Lock()
	g.paused = true
	g.mu.Unlock()
	return nil
}

func (g *pollGate) show() error {
	g.mu.Lock()
	g.paused = false
	g.mu.Unlock()
	select {
	case g.wake <- struct{}{}:
	default:
	}
	return nil
}

func (g *pollGate) isPaused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.paused
}

// poller runs a sampling panel: one immediate emission, then one per
// interval, paused while the panel is hidden. sample is called only from the
// poller's own goroutine.
type poller struct {
	c        *common
	interval time.Duration
	sample   func() (string, error)
}

func (p poller) run(ctx context.Context, h *render.Handle) <-chan bar.Update {
	updates := make(chan bar.Update, 1)
	gate := newPollGate()
	go func() {
		defer close(updates)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		refresh := func() bool {
			text, err := p.sample()
			if err != nil {
				return emit(ctx, updates, bar.Update{Err: err})
			}
			info := p.c.textInfo(h, text)
			info.Show = gate.show
			info.Hide = gate.hide
			return emit(ctx, updates, bar.Update{Info: info})
		}

		if !refresh() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if gate.isPaused() {
					continue
				}
				if !refresh() {
					return
				}
			case <-gate.wake:
				if !refresh() {
					return
				}
			}
		}
	}()
	return updates
}
