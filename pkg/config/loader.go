package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoBars       = errors.New("no bars defined")
	ErrBarNotFound  = errors.New("bar not found")
	ErrUnknownPanel = errors.New("unknown panel reference")
	ErrUnknownAttrs = errors.New("unknown attrs reference")
)

// LoadConfig reads, parses, and validates the config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SelectBar resolves the -bar flag: an empty name means the first bar in
// file order.
func (c *Config) SelectBar(name string) (string, Bar, error) {
	if len(c.Bars.Order) == 0 {
		return "", Bar{}, ErrNoBars
	}
	if name == "" {
		name = c.Bars.Order[0]
	}
	bar, ok := c.Bars.ByName[name]
	if !ok {
		return "", Bar{}, fmt.Errorf("%w: %s", ErrBarNotFound, name)
	}
	return name, bar, nil
}

// IPCEnabled reports whether the bar should open its control socket.
func (b Bar) IPCEnabled() bool {
	return b.IPC == nil || *b.IPC
}

// IsVisible reports the panel's startup visibility.
func (p Panel) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

func applyDefaults(cfg *Config) {
	for name, bar := range cfg.Bars.ByName {
		if bar.Position == "" {
			bar.Position = "bottom"
		}
		if bar.Height <= 0 {
			bar.Height = 1
		}
		cfg.Bars.ByName[name] = bar
	}
}

func validate(cfg *Config) error {
	for _, name := range cfg.Bars.Order {
		bar := cfg.Bars.ByName[name]
		if bar.Position != "top" && bar.Position != "bottom" {
			return fmt.Errorf("bar %s: position must be top or bottom, got %q", name, bar.Position)
		}
		if bar.Attrs != "" {
			if _, ok := cfg.Attrs[bar.Attrs]; !ok {
				return fmt.Errorf("bar %s: %w: %s", name, ErrUnknownAttrs, bar.Attrs)
			}
		}
		for _, group := range [][]string{bar.Left, bar.Center, bar.Right} {
			for _, ref := range group {
				if _, ok := cfg.Panels[ref]; !ok {
					return fmt.Errorf("bar %s: %w: %s", name, ErrUnknownPanel, ref)
				}
			}
		}
	}
	for name, panel := range cfg.Panels {
		if panel.Type == "" {
			return fmt.Errorf("panel %s: missing type", name)
		}
		if panel.Attrs != "" {
			if _, ok := cfg.Attrs[panel.Attrs]; !ok {
				return fmt.Errorf("panel %s: %w: %s", name, ErrUnknownAttrs, panel.Attrs)
			}
		}
	}
	return nil
}
