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

// cpuPanel polls the aggregate line of a stat-format file and shows the load
// since the previous sample. The first emission covers everything since
// boot.
type cpuPanel struct {
	common
	path     string
	interval time.Duration
	format   string
	last     cpuLoad
}

type cpuLoad struct {
	idle  uint64
	total uint64
}

func newCPU(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	path := cfg.Path
	if path == "" {
		path = "/proc/stat"
	}
	format := cfg.Format
	if format == "" {
		format = "CPU: %percentage%"
	}
	return &cpuPanel{
		common:   c,
		path:     path,
		interval: intervalOr(cfg.Interval, 10*time.Second),
		format:   format,
	}, nil
}

func (p *cpuPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	runner := poller{c: &p.common, interval: p.interval, sample: p.sample}
	return runner.run(ctx, h), nil, nil
}

func (p *cpuPanel) sample() (string, error) {
	load, err := readLoad(p.path)
	if err != nil {
		return "", err
	}
	diff := load.total - p.last.total
	var pct float64
	if diff > 0 {
		pct = float64(diff-(load.idle-p.last.idle)) / float64(diff) * 100
	}
	p.last = load
	return strings.ReplaceAll(p.format, "%percentage%", strconv.FormatFloat(pct, 'f', 0, 64)), nil
}

// readLoad parses the aggregate cpu line: user, nice, system, idle, iowait,
// irq, softirq, steal. Busy time is user+nice+system+steal.
func readLoad(path string) (cpuLoad, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return cpuLoad{}, err
	}
	for _, line := range strings.Split(string(raw), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 9 || fields[0] != "cpu" {
			continue
		}
		var vals [8]uint64
		for i := range vals {
			v, err := strconv.ParseUint(fields[i+1], 10, 64)
			if err != nil {
				return cpuLoad{}, fmt.Errorf("%s: bad cpu field %q", path, fields[i+1])
			}
			vals[i] = v
		}
		user, nice, system, idle, steal := vals[0], vals[1], vals[2], vals[3], vals[7]
		return cpuLoad{idle: idle, total: user + nice + system + idle + steal}, nil
	}
	return cpuLoad{}, fmt.Errorf("%s: no aggregate cpu line", path)
}
