package render

import (
	"log"

	"github.com/mattn/go-runewidth"
)

// Handle is what a running panel gets to work with: text measurement for
// sizing its draw info, and the bar's logger.
type Handle struct {
	Log *log.Logger
}

// NewHandle returns a handle logging through logger.
func NewHandle(logger *log.Logger) *Handle {
	return &Handle{Log: logger}
}

// Measure returns the display width of text in cells.
func (h *Handle) Measure(text string) int {
	return runewidth.StringWidth(text)
}

// Truncate shortens text to at most maxWidth cells, appending an ellipsis
// when it had to cut. maxWidth <= 0 means no limit.
func (h *Handle) Truncate(text string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	return runewidth.Truncate(text, maxWidth, "…")
}
