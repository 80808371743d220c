// Package config holds the YAML configuration model: bars, panels, and named
// attrs tables, plus reference validation between them.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/b/ledge/pkg/colors"
	"github.com/b/ledge/pkg/render"
)

type Config struct {
	Bars   Bars             `yaml:"bars"`
	Panels map[string]Panel `yaml:"panels"`
	Attrs  map[string]Attrs `yaml:"attrs"`
}

// Bars keeps the bar tables along with their file order, so the first bar in
// the file can serve as the default.
type Bars struct {
	ByName map[string]Bar
	Order  []string
}

func (b *Bars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("bars: expected a mapping")
	}
	b.ByName = make(map[string]Bar)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var bar Bar
		if err := node.Content[i+1].Decode(&bar); err != nil {
			return err
		}
		b.ByName[name] = bar
		b.Order = append(b.Order, name)
	}
	return nil
}

type Bar struct {
	Position      string   `yaml:"position"` // top or bottom (default: bottom)
	Height        int      `yaml:"height"`   // rows (default: 1)
	BG            string   `yaml:"bg"`       // background fill color
	Margins       Margins  `yaml:"margins"`
	ReverseScroll bool     `yaml:"reverse_scroll"`
	IPC           *bool    `yaml:"ipc"`   // socket on/off (default: on)
	Attrs         string   `yaml:"attrs"` // attrs table applied as every panel's default
	Left          []string `yaml:"left"`
	Center        []string `yaml:"center"`
	Right         []string `yaml:"right"`
}

type Margins struct {
	Left     float64 `yaml:"left"`
	Internal float64 `yaml:"internal"`
	Right    float64 `yaml:"right"`
}

// Panel is one panel table. Type selects the kind; the remaining fields are
// read by the kind that uses them.
type Panel struct {
	Type       string  `yaml:"type"`
	Dependence string  `yaml:"dependence"` // none, left, right, both (default: none)
	Visible    *bool   `yaml:"visible"`    // default: true
	Attrs      string  `yaml:"attrs"`      // attrs table name
	MaxWidth   int     `yaml:"max_width"`  // cells, 0 = unlimited
	Actions    Actions `yaml:"actions"`

	// clock
	Format    string   `yaml:"format"`
	Formats   []string `yaml:"formats"`
	Precision string   `yaml:"precision"` // days, hours, minutes, seconds (default: seconds)

	// custom
	Command    string `yaml:"command"`
	Interval   int    `yaml:"interval"` // seconds; 0 = run once (custom) or kind default (pollers)
	Persistent bool   `yaml:"persistent"`

	// inotify, memory, cpu, network source file; battery power-supply root
	Path string `yaml:"path"`

	// battery
	Battery           string `yaml:"battery"` // default: BAT0
	Adapter           string `yaml:"adapter"` // default: AC
	FormatCharging    string `yaml:"format_charging"`
	FormatDischarging string `yaml:"format_discharging"`
	FormatNotCharging string `yaml:"format_not_charging"`
	FormatFull        string `yaml:"format_full"`
	FormatUnknown     string `yaml:"format_unknown"`

	// network
	Interface string `yaml:"interface"` // default: eth0
}

// Actions maps mouse buttons to the action string delivered to the panel.
type Actions struct {
	ClickLeft   string `yaml:"click_left"`
	ClickRight  string `yaml:"click_right"`
	ClickMiddle string `yaml:"click_middle"`
	ScrollUp    string `yaml:"scroll_up"`
	ScrollDown  string `yaml:"scroll_down"`
}

// Attrs is one named style table.
type Attrs struct {
	FG        string `yaml:"fg"`
	BG        string `yaml:"bg"`
	Bold      *bool  `yaml:"bold"`
	Italic    *bool  `yaml:"italic"`
	Underline *bool  `yaml:"underline"`
}

// Resolve normalizes the table's colors and returns the drawable form.
func (a Attrs) Resolve() (render.Attrs, error) {
	out := render.Attrs{Bold: a.Bold, Italic: a.Italic, Underline: a.Underline}
	if a.FG != "" {
		fg, err := colors.Normalize(a.FG)
		if err != nil {
			return render.Attrs{}, fmt.Errorf("fg: %w", err)
		}
		out.FG = fg
	}
	if a.BG != "" {
		bg, err := colors.Normalize(a.BG)
		if err != nil {
			return render.Attrs{}, fmt.Errorf("bg: %w", err)
		}
		out.BG = bg
	}
	return out, nil
}
