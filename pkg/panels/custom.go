package panels

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// customPanel runs a shell command and renders its output: exactly once when
// no interval is configured, on an interval otherwise, or persistently under
// a pty streaming the command's most recent output line.
type customPanel struct {
	common
	command    string
	interval   time.Duration
	persistent bool
	format     string
}

func newCustom(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	if cfg.Command == "" {
		return nil, fmt.Errorf("panel %s: command is required", name)
	}
	format := cfg.Format
	if format == "" {
		format = "%stdout%"
	}
	var interval time.Duration
	if cfg.Interval > 0 {
		interval = time.Duration(cfg.Interval) * time.Second
	}
	return &customPanel{
		common:     c,
		command:    cfg.Command,
		interval:   interval,
		persistent: cfg.Persistent,
		format:     format,
	}, nil
}

func (p *customPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	if p.persistent {
		return p.runPersistent(ctx, h), nil, nil
	}
	if p.interval > 0 {
		runner := poller{c: &p.common, interval: p.interval, sample: func() (string, error) {
			return p.capture(ctx)
		}}
		return runner.run(ctx, h), nil, nil
	}

	updates := make(chan bar.Update, 1)
	go func() {
		defer close(updates)
		text, err := p.capture(ctx)
		if err != nil {
			emit(ctx, updates, bar.Update{Err: err})
			return
		}
		emit(ctx, updates, bar.Update{Info: p.textInfo(h, text)})
	}()
	return updates, nil, nil
}

// capture runs the command once with sh -c and formats its output. A
// non-zero exit still renders whatever was captured; only failing to run the
// command at all is an error.
func (p *customPanel) capture(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "sh", "-c", p.command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", fmt.Errorf("run %q: %w", p.command, err)
	}
	text := strings.NewReplacer(
		"%stdout%", stdout.String(),
		"%stderr%", stderr.String(),
	).Replace(p.format)
	return strings.TrimSpace(text), nil
}

// runPersistent starts the command once under a pty and emits an update per
// output line. The pty keeps line-buffered tools flushing promptly; it also
// merges stderr into the stream, so %stderr% renders empty here.
func (p *customPanel) runPersistent(ctx context.Context, h *render.Handle) <-chan bar.Update {
	updates := make(chan bar.Update, 1)
	go func() {
		defer close(updates)
		cmd := exec.CommandContext(ctx, "sh", "-c", p.command)
		tty, err := pty.Start(cmd)
		if err != nil {
			emit(ctx, updates, bar.Update{Err: fmt.Errorf("start %q: %w", p.command, err)})
			return
		}
		defer func() {
			tty.Close()
			cmd.Wait()
		}()
		// Descendants of the shell can hold the pty open past the kill that
		// CommandContext delivers; closing the master unblocks the reader.
		stop := context.AfterFunc(ctx, func() { tty.Close() })
		defer stop()

		scanner := bufio.NewScanner(tty)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			text := strings.NewReplacer(
				"%stdout%", line,
				"%stderr%", "",
			).Replace(p.format)
			if !emit(ctx, updates, bar.Update{Info: p.textInfo(h, strings.TrimSpace(text))}) {
				return
			}
		}
		// The pty read error after the child exits is routine; keep the last
		// line on screen.
	}()
	return updates
}
