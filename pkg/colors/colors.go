// Package colors parses and derives the color values used by bar and panel
// attrs. Values are kept as strings in the forms lipgloss understands: hex
// ("#rrggbb") or ANSI palette indices ("0".."255").
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Common color names accepted in config files, mapped to ANSI indices.
var named = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"brightblack":   "8",
	"brightred":     "9",
	"brightgreen":   "10",
	"brightyellow":  "11",
	"brightblue":    "12",
	"brightmagenta": "13",
	"brightcyan":    "14",
	"brightwhite":   "15",
}

// Normalize validates a configured color and returns its canonical form:
// "#rgb" expands to "#rrggbb", names map to ANSI indices, ANSI indices and
// "#rrggbb" pass through.
func Normalize(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", fmt.Errorf("empty color value")
	}
	if ansi, ok := named[v]; ok {
		return ansi, nil
	}
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		switch len(hex) {
		case 3:
			var b strings.Builder
			b.WriteByte('#')
			for i := 0; i < 3; i++ {
				b.WriteByte(hex[i])
				b.WriteByte(hex[i])
			}
			v = b.String()
		case 6:
		default:
			return "", fmt.Errorf("invalid hex color %q", value)
		}
		if _, _, _, ok := hexToRGB(v); !ok {
			return "", fmt.Errorf("invalid hex color %q", value)
		}
		return v, nil
	}
	if idx, err := strconv.Atoi(v); err == nil && idx >= 0 && idx <= 255 {
		return v, nil
	}
	return "", fmt.Errorf("unrecognized color %q", value)
}

// Luminance calculates the relative luminance of a hex color per WCAG formula.
// Returns a value between 0 (black) and 1 (white); non-hex values (ANSI
// indices) report 0.5 so callers treat them as neutral.
func Luminance(color string) float64 {
	r, g, b, ok := hexToRGB(color)
	if !ok {
		return 0.5
	}

	rs := gammaSRGB(float64(r) / 255.0)
	gs := gammaSRGB(float64(g) / 255.0)
	bs := gammaSRGB(float64(b) / 255.0)

	return 0.2126*rs + 0.7152*gs + 0.0722*bs
}

// gammaSRGB applies sRGB gamma correction
func gammaSRGB(val float64) float64 {
	if val <= 0.03928 {
		return val / 12.92
	}
	return math.Pow((val+0.055)/1.055, 2.4)
}

// ContrastFg picks a readable default foreground for the given background:
// dark text on light backgrounds, light text on dark ones.
func ContrastFg(bg string) string {
	if Luminance(bg) > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// Dim moves a hex color partway toward the midpoint gray, for de-emphasized
// text (startup placeholder, separators). Non-hex values pass through.
func Dim(color string, amount float64) string {
	r, g, b, ok := hexToRGB(color)
	if !ok {
		return color
	}
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}

	blend := func(v int64) int64 {
		return v + int64((128-float64(v))*amount)
	}

	return rgbToHex(blend(r), blend(g), blend(b))
}

// hexToRGB converts a "#rrggbb" string to RGB values (0-255).
func hexToRGB(color string) (int64, int64, int64, bool) {
	hex := strings.TrimPrefix(color, "#")
	if len(hex) != 6 || !strings.HasPrefix(color, "#") {
		return 0, 0, 0, false
	}

	r, errR := strconv.ParseInt(hex[0:2], 16, 64)
	g, errG := strconv.ParseInt(hex[2:4], 16, 64)
	b, errB := strconv.ParseInt(hex[4:6], 16, 64)

	if errR != nil || errG != nil || errB != nil {
		return 0, 0, 0, false
	}

	return r, g, b, true
}

// rgbToHex converts RGB values to a hex color string, clamping to 0-255.
func rgbToHex(r, g, b int64) string {
	clamp := func(v int64) int64 {
		if v > 255 {
			return 255
		}
		if v < 0 {
			return 0
		}
		return v
	}

	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}
