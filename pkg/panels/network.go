package panels

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// networkPanel polls a net/dev-format file and shows one interface's receive
// and transmit rates since the previous sample.
type networkPanel struct {
	common
	ifname   string
	path     string
	interval time.Duration
	format   string

	last   netSample
	lastAt time.Time
}

type netSample struct {
	rx uint64
	tx uint64
}

func newNetwork(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	ifname := cfg.Interface
	if ifname == "" {
		ifname = "eth0"
	}
	path := cfg.Path
	if path == "" {
		path = "/proc/net/dev"
	}
	format := cfg.Format
	if format == "" {
		format = "%ifname% %rx% %tx%"
	}
	return &networkPanel{
		common:   c,
		ifname:   ifname,
		path:     path,
		interval: intervalOr(cfg.Interval, 10*time.Second),
		format:   format,
	}, nil
}

func (p *networkPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	runner := poller{c: &p.common, interval: p.interval, sample: p.sample}
	return runner.run(ctx, h), nil, nil
}

func (p *networkPanel) sample() (string, error) {
	now := time.Now()
	s, err := readNetDev(p.path, p.ifname)
	if err != nil {
		return "", err
	}
	var rx, tx uint64
	if !p.lastAt.IsZero() {
		rx, tx = rates(p.last, s, now.Sub(p.lastAt).Seconds())
	}
	p.last, p.lastAt = s, now
	return strings.NewReplacer(
		"%ifname%", p.ifname,
		"%rx%", humanize.IBytes(rx)+"/s",
		"%tx%", humanize.IBytes(tx)+"/s",
	).Replace(p.format), nil
}

// rates converts two counter samples to per-second byte rates. Counter
// wraps (or an interface reset) report as zero until the next sample.
func rates(prev, cur netSample, elapsed float64) (rx, tx uint64) {
	if elapsed <= 0 {
		return 0, 0
	}
	if cur.rx >= prev.rx {
		rx = uint64(float64(cur.rx-prev.rx) / elapsed)
	}
	if cur.tx >= prev.tx {
		tx = uint64(float64(cur.tx-prev.tx) / elapsed)
	}
	return rx, tx
}

// readNetDev extracts the rx and tx byte counters for one interface from a
// net/dev-format file.
func readNetDev(path, ifname string) (netSample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return netSample{}, err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		name, rest, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) != ifname {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 9 {
			return netSample{}, fmt.Errorf("%s: short %s line", path, ifname)
		}
		rx, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return netSample{}, fmt.Errorf("%s: rx bytes: %w", path, err)
		}
		tx, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return netSample{}, fmt.Errorf("%s: tx bytes: %w", path, err)
		}
		return netSample{rx: rx, tx: tx}, nil
	}
	return netSample{}, fmt.Errorf("%s: no interface %s", path, ifname)
}
