// Package panels implements the built-in panel kinds and the registry that
// builds them from configuration. Each kind is a bar.Producer: it owns its
// polling or watching goroutine and emits draw descriptors on a channel.
package panels

import (
	"fmt"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/render"
)

type buildFunc func(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error)

var kinds = map[string]buildFunc{
	"clock":     newClock,
	"custom":    newCustom,
	"inotify":   newInotify,
	"memory":    newMemory,
	"cpu":       newCPU,
	"battery":   newBattery,
	"network":   newNetwork,
	"separator": newSeparator,
}

// Build constructs the producer for one configured panel. attrs is the
// panel's own resolved table (zero value when the panel names none).
func Build(name string, cfg config.Panel, attrs render.Attrs) (bar.Producer, error) {
	build, ok := kinds[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("panel %s: unknown type %q", name, cfg.Type)
	}
	return build(name, cfg, attrs)
}

// FromConfig builds the three producer groups for one bar table.
func FromConfig(cfg *config.Config, barCfg config.Bar) (left, center, right []bar.Producer, err error) {
	buildGroup := func(refs []string) ([]bar.Producer, error) {
		producers := make([]bar.Producer, 0, len(refs))
		for _, ref := range refs {
			panelCfg := cfg.Panels[ref]
			var attrs render.Attrs
			if panelCfg.Attrs != "" {
				attrs, err = cfg.Attrs[panelCfg.Attrs].Resolve()
				if err != nil {
					return nil, fmt.Errorf("panel %s: attrs %s: %w", ref, panelCfg.Attrs, err)
				}
			}
			producer, err := Build(ref, panelCfg, attrs)
			if err != nil {
				return nil, err
			}
			producers = append(producers, producer)
		}
		return producers, nil
	}

	if left, err = buildGroup(barCfg.Left); err != nil {
		return nil, nil, nil, err
	}
	if center, err = buildGroup(barCfg.Center); err != nil {
		return nil, nil, nil, err
	}
	if right, err = buildGroup(barCfg.Right); err != nil {
		return nil, nil, nil, err
	}
	return left, center, right, nil
}
