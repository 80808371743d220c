package panels

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

func testHandle() *render.Handle {
	return render.NewHandle(log.New(io.Discard, "", 0))
}

// nextInfo waits for one successful update and returns its descriptor.
func nextInfo(t *testing.T, updates <-chan bar.Update) *bar.DrawInfo {
	t.Helper()
	select {
	case u, ok := <-updates:
		if !ok {
			t.Fatalf("update stream closed early")
		}
		if u.Err != nil {
			t.Fatalf("unexpected update error: %v", u.Err)
		}
		return u.Info
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for update")
	}
	return nil
}

// infoText paints a descriptor into a scratch frame sized to fit and returns
// the rendered row.
func infoText(t *testing.T, info *bar.DrawInfo) string {
	t.Helper()
	if info.Width == 0 {
		return ""
	}
	f := render.NewFrame(info.Width, 1, render.CellStyle{})
	if err := info.Draw(f, 0, 0); err != nil {
		t.Fatalf("draw: %v", err)
	}
	return f.Render()
}

// waitForText drains updates until one renders as want.
func waitForText(t *testing.T, updates <-chan bar.Update, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				t.Fatalf("update stream closed before %q arrived", want)
			}
			if u.Err != nil {
				continue
			}
			if got := infoText(t, u.Info); got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuildUnknownType(t *testing.T) {
	_, err := Build("status", config.Panel{Type: "frobnicator"}, render.Attrs{})
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFromConfigBuildsGroups(t *testing.T) {
	cfg := &config.Config{
		Panels: map[string]config.Panel{
			"sep":   {Type: "separator"},
			"clock": {Type: "clock"},
			"mem":   {Type: "memory", Attrs: "dim"},
		},
		Attrs: map[string]config.Attrs{
			"dim": {FG: "#888888"},
		},
	}
	barCfg := config.Bar{
		Left:   []string{"sep"},
		Center: []string{"clock"},
		Right:  []string{"mem", "sep"},
	}
	left, center, right, err := FromConfig(cfg, barCfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if len(left) != 1 || len(center) != 1 || len(right) != 2 {
		t.Fatalf("expected group sizes 1/1/2, got %d/%d/%d", len(left), len(center), len(right))
	}
	name, visible := left[0].Props()
	if name != "sep" || !visible {
		t.Fatalf("expected visible sep, got %s %v", name, visible)
	}
}

func TestFromConfigBadAttrs(t *testing.T) {
	cfg := &config.Config{
		Panels: map[string]config.Panel{
			"mem": {Type: "memory", Attrs: "loud"},
		},
		Attrs: map[string]config.Attrs{
			"loud": {FG: "not-a-color"},
		},
	}
	_, _, _, err := FromConfig(cfg, config.Bar{Left: []string{"mem"}})
	if err == nil {
		t.Fatalf("expected error for unresolvable attrs")
	}
}

func TestSeparatorDefaultFormat(t *testing.T) {
	p, err := Build("sep", config.Panel{Type: "separator"}, render.Attrs{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, ep, err := p.Run(ctx, testHandle(), render.Attrs{}, 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ep != nil {
		t.Fatalf("separator must not expose an endpoint")
	}
	info := nextInfo(t, updates)
	if info.Width != 3 {
		t.Fatalf("expected width 3, got %d", info.Width)
	}
	if got := infoText(t, info); got != " | " {
		t.Fatalf("expected %q, got %q", " | ", got)
	}
	if _, ok := <-updates; ok {
		t.Fatalf("expected stream to close after the only emission")
	}
}

func TestActionMapping(t *testing.T) {
	c := common{actions: config.Actions{
		ClickLeft:  "open",
		ScrollUp:   "volume_up",
		ScrollDown: "volume_down",
	}}
	if got := c.action(bar.MouseEvent{Button: bar.MouseLeft}); got != "open" {
		t.Fatalf("expected open, got %q", got)
	}
	if got := c.action(bar.MouseEvent{Button: bar.MouseMiddle}); got != "" {
		t.Fatalf("expected empty action for unconfigured button, got %q", got)
	}
	if got := c.action(bar.MouseEvent{Button: bar.MouseScrollDown}); got != "volume_down" {
		t.Fatalf("expected volume_down, got %q", got)
	}
	if got := c.action(bar.ActionEvent("cycle")); got != "cycle" {
		t.Fatalf("expected cycle, got %q", got)
	}
}

func TestTextInfoTruncates(t *testing.T) {
	c := common{maxWidth: 5}
	info := c.textInfo(testHandle(), "a very long line")
	if info.Width != 5 {
		t.Fatalf("expected width 5, got %d", info.Width)
	}
	if got := infoText(t, info); got != "a ve…" {
		t.Fatalf("expected %q, got %q", "a ve…", got)
	}
}

func TestPollerWakesOnShow(t *testing.T) {
	n := 0
	p := poller{
		c:        &common{},
		interval: 10 * time.Second,
		sample: func() (string, error) {
			n++
			return strconv.Itoa(n), nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := p.run(ctx, testHandle())

	info := nextInfo(t, updates)
	if got := infoText(t, info); got != "1" {
		t.Fatalf("expected first sample, got %q", got)
	}
	if err := info.Hide(); err != nil {
		t.Fatalf("hide hook: %v", err)
	}
	if err := info.Show(); err != nil {
		t.Fatalf("show hook: %v", err)
	}
	if got := infoText(t, nextInfo(t, updates)); got != "2" {
		t.Fatalf("expected wake refresh, got %q", got)
	}
}

func TestPollerEmitsErrors(t *testing.T) {
	p := poller{
		c:        &common{},
		interval: 10 * time.Second,
		sample:   func() (string, error) { return "", errors.New("boom") },
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := p.run(ctx, testHandle())
	select {
	case u := <-updates:
		if u.Err == nil {
			t.Fatalf("expected error update")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for error update")
	}
}
