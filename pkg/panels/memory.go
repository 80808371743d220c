package panels

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// memoryPanel polls a meminfo-format file for RAM and swap usage.
type memoryPanel struct {
	common
	path     string
	interval time.Duration
	format   string
}

func newMemory(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	path := cfg.Path
	if path == "" {
		path = "/proc/meminfo"
	}
	format := cfg.Format
	if format == "" {
		format = "RAM: %percentage_used%"
	}
	return &memoryPanel{
		common:   c,
		path:     path,
		interval: intervalOr(cfg.Interval, 10*time.Second),
		format:   format,
	}, nil
}

func (p *memoryPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	runner := poller{c: &p.common, interval: p.interval, sample: p.sample}
	return runner.run(ctx, h), nil, nil
}

func (p *memoryPanel) sample() (string, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return "", err
	}
	values := parseMeminfo(raw)

	total, ok := values["MemTotal"]
	if !ok {
		return "", fmt.Errorf("%s: missing MemTotal", p.path)
	}
	available, ok := values["MemAvailable"]
	if !ok {
		free, okFree := values["MemFree"]
		buffers, okBuf := values["Buffers"]
		cached, okCache := values["Cached"]
		reclaimable, okRecl := values["SReclaimable"]
		shmem, okShmem := values["Shmem"]
		if !okFree || !okBuf || !okCache || !okRecl || !okShmem {
			return "", fmt.Errorf("%s: cannot approximate MemAvailable", p.path)
		}
		available = free + buffers + cached + reclaimable - shmem
	}
	used := total - available

	swapTotal, okTotal := values["SwapTotal"]
	swapFree, okFree := values["SwapFree"]
	if !okTotal || !okFree {
		return "", fmt.Errorf("%s: missing swap totals", p.path)
	}
	swapUsed := swapTotal - swapFree

	pctUsed := percent(used, total)
	pctSwapUsed := percent(swapUsed, swapTotal)
	return strings.NewReplacer(
		"%gb_used%", gbString(used),
		"%gb_free%", gbString(available),
		"%gb_total%", gbString(total),
		"%mb_used%", mbString(used),
		"%mb_free%", mbString(available),
		"%mb_total%", mbString(total),
		"%gb_swap_used%", gbString(swapUsed),
		"%gb_swap_free%", gbString(swapFree),
		"%gb_swap_total%", gbString(swapTotal),
		"%mb_swap_used%", mbString(swapUsed),
		"%mb_swap_free%", mbString(swapFree),
		"%mb_swap_total%", mbString(swapTotal),
		"%percentage_used%", strconv.FormatUint(pctUsed, 10),
		"%percentage_free%", strconv.FormatUint(100-pctUsed, 10),
		"%percentage_swap_used%", strconv.FormatUint(pctSwapUsed, 10),
		"%percentage_swap_free%", strconv.FormatUint(100-pctSwapUsed, 10),
	).Replace(p.format), nil
}

// parseMeminfo extracts the numeric kB values keyed by field name. Lines
// that don't parse are skipped.
func parseMeminfo(raw []byte) map[string]uint64 {
	values := make(map[string]uint64)
	for _, line := range strings.Split(string(raw), "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		values[strings.TrimSpace(key)] = v
	}
	return values
}

// percent truncates like the substitutions expect: 15.9% renders as 15.
func percent(part, whole uint64) uint64 {
	if whole == 0 {
		return 0
	}
	return uint64(float64(part) / float64(whole) * 100)
}

func gbString(kb uint64) string {
	return strconv.FormatFloat(float64(kb)/1024/1024, 'f', 2, 64)
}

func mbString(kb uint64) string {
	return strconv.FormatUint(uint64(float64(kb)/1024), 10)
}
