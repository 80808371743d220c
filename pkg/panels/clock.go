package panels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// precision selects the time unit whose boundary the clock sleeps to.
type precision int

const (
	precisionSeconds precision = iota
	precisionMinutes
	precisionHours
	precisionDays
)

func parsePrecision(s string) (precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seconds":
		return precisionSeconds, nil
	case "minutes":
		return precisionMinutes, nil
	case "hours":
		return precisionHours, nil
	case "days":
		return precisionDays, nil
	}
	return precisionSeconds, fmt.Errorf("unknown precision %q", s)
}

// boundary returns the time from now until the next tick of the unit, in
// local time.
func (p precision) boundary(now time.Time) time.Duration {
	var d time.Duration
	switch p {
	case precisionDays:
		y, m, day := now.Date()
		d = time.Date(y, m, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1).Sub(now)
	case precisionHours:
		y, m, day := now.Date()
		d = time.Date(y, m, day, now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour).Sub(now)
	case precisionMinutes:
		d = now.Truncate(time.Minute).Add(time.Minute).Sub(now)
	default:
		d = now.Truncate(time.Second).Add(time.Second).Sub(now)
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

// strftimeLayout converts a strftime-style format string to a Go
// reference-time layout. Unknown specifiers pass through untouched.
func strftimeLayout(format string) string {
	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'e':
			b.WriteString("_2")
		case 'H':
			b.WriteString("15")
		case 'I':
			b.WriteString("03")
		case 'M':
			b.WriteString("04")
		case 'S':
			b.WriteString("05")
		case 'p':
			b.WriteString("PM")
		case 'P':
			b.WriteString("pm")
		case 'a':
			b.WriteString("Mon")
		case 'A':
			b.WriteString("Monday")
		case 'b', 'h':
			b.WriteString("Jan")
		case 'B':
			b.WriteString("January")
		case 'j':
			b.WriteString("002")
		case 'Z':
			b.WriteString("MST")
		case 'z':
			b.WriteString("-0700")
		case 'T':
			b.WriteString("15:04:05")
		case 'R':
			b.WriteString("15:04")
		case 'F':
			b.WriteString("2006-01-02")
		case 'D':
			b.WriteString("01/02/06")
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// clockPanel shows the current time, sleeping until the next boundary of its
// precision unit rather than ticking on a fixed interval. When several
// formats are configured, the cycle and cycle_back actions rotate through
// them.
type clockPanel struct {
	common
	precision precision
	layouts   []string
}

func newClock(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	prec, err := parsePrecision(cfg.Precision)
	if err != nil {
		return nil, fmt.Errorf("panel %s: %w", name, err)
	}
	formats := cfg.Formats
	if len(formats) == 0 {
		switch {
		case cfg.Format != "":
			formats = []string{cfg.Format}
		default:
			formats = []string{"%Y-%m-%d %H:%M:%S"}
		}
	}
	layouts := make([]string, len(formats))
	for i, f := range formats {
		layouts[i] = strftimeLayout(f)
	}
	return &clockPanel{common: c, precision: prec, layouts: layouts}, nil
}

func (p *clockPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	updates := make(chan bar.Update, 1)
	ep, events, responses := bar.NewEndpoint(4)

	go func() {
		defer close(updates)
		defer close(responses)

		idx := 0
		timer := time.NewTimer(0)
		defer timer.Stop()

		redraw := func() bool {
			text := time.Now().Format(p.layouts[idx])
			return emit(ctx, updates, bar.Update{Info: p.textInfo(h, text)})
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				if !redraw() {
					return
				}
				timer.Reset(p.precision.boundary(time.Now()))
			case ev, ok := <-events:
				if !ok {
					return
				}
				var resp bar.EventResponse
				switch action := p.action(ev); action {
				case "cycle":
					idx = (idx + 1) % len(p.layouts)
					if !redraw() {
						return
					}
				case "cycle_back":
					idx = (idx - 1 + len(p.layouts)) % len(p.layouts)
					if !redraw() {
						return
					}
				case "":
				default:
					resp = bar.EventResponse{Reason: fmt.Sprintf("Unknown event %s", action)}
				}
				select {
				case responses <- resp:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return updates, ep, nil
}
