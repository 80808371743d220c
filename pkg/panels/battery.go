package panels

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

// batteryPanel polls the kernel power-supply files for one battery and picks
// a format by charge state. The adapter key is accepted for config
// compatibility but not read.
type batteryPanel struct {
	common
	dir      string
	interval time.Duration
	formats  batteryFormats
}

type batteryFormats struct {
	charging    string
	discharging string
	notCharging string
	full        string
	unknown     string
}

func newBattery(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	c, err := newCommon(name, cfg, attrs)
	if err != nil {
		return nil, err
	}
	battery := cfg.Battery
	if battery == "" {
		battery = "BAT0"
	}
	root := cfg.Path
	if root == "" {
		root = "/sys/class/power_supply"
	}
	formats := batteryFormats{
		charging:    orDefault(cfg.FormatCharging, "CHG: %percentage%%"),
		discharging: orDefault(cfg.FormatDischarging, "DSCHG: %percentage%%"),
		notCharging: orDefault(cfg.FormatNotCharging, "NCHG: %percentage%%"),
		full:        orDefault(cfg.FormatFull, "FULL: %percentage%%"),
		unknown:     orDefault(cfg.FormatUnknown, "%percentage%%"),
	}
	return &batteryPanel{
		common:   c,
		dir:      filepath.Join(root, battery),
		interval: intervalOr(cfg.Interval, 10*time.Second),
		formats:  formats,
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (p *batteryPanel) Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan bar.Update, *bar.Endpoint, error) {
	p.attrs.Inherit(defaults)
	runner := poller{c: &p.common, interval: p.interval, sample: p.sample}
	return runner.run(ctx, h), nil, nil
}

func (p *batteryPanel) sample() (string, error) {
	capRaw, err := os.ReadFile(filepath.Join(p.dir, "capacity"))
	if err != nil {
		return "", err
	}
	capacity := strings.TrimSpace(string(capRaw))
	statusRaw, err := os.ReadFile(filepath.Join(p.dir, "status"))
	if err != nil {
		return "", err
	}

	var format string
	switch strings.TrimSpace(string(statusRaw)) {
	case "Charging":
		format = p.formats.charging
	case "Discharging":
		format = p.formats.discharging
	case "Not charging":
		format = p.formats.notCharging
	case "Full":
		format = p.formats.full
	case "Unknown":
		format = p.formats.unknown
	default:
		return "Unknown battery state", nil
	}
	return strings.ReplaceAll(format, "%percentage%", capacity), nil
}
