package bar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// visibilityMsg matches "#"-stripped panel visibility messages: a region
// letter, a panel index, and a verb ("l0.show").
var visibilityMsg = regexp.MustCompile(`^([lcr])(\d+)\.(.+)$`)

// ProcessClick routes a raw button press (codes 1-5) to the panel whose span
// contains x, scanning left, center, right in that precedence. The event's x
// is made panel-relative; the response is drained off the loop and dropped.
func (b *Bar) ProcessClick(button, x, y int) {
	logical, ok := translateButton(button, b.reverseScroll)
	if !ok {
		return
	}

	fx := float64(x)
	var target *Panel
	for _, p := range b.Panels() {
		if p.drawInfo == nil {
			continue
		}
		if p.x <= fx && fx < p.x+float64(p.drawInfo.Width) {
			target = p
			break
		}
	}
	if target == nil || target.endpoint == nil {
		return
	}

	ev := MouseEvent{Button: logical, X: x - int(target.x), Y: y}
	ep := target.endpoint
	go func() {
		ep.Exchange(ev)
	}()
}

// HandleMessage dispatches one IPC message and arranges for exactly one
// response through reply (possibly from another goroutine, for messages that
// wait on a panel). It reports whether the bar should quit.
func (b *Bar) HandleMessage(message string, reply func(EventResponse)) bool {
	if stripped, ok := strings.CutPrefix(message, "#"); ok {
		reply(b.handleVisibilityMessage(stripped))
		return false
	}

	name, payload, found := strings.Cut(message, ".")
	if !found {
		return b.handleBarMessage(message, reply)
	}

	var matches []*Panel
	for _, p := range b.Panels() {
		if p.name == name {
			matches = append(matches, p)
		}
	}

	switch {
	case len(matches) == 0:
		reply(EventResponse{Reason: fmt.Sprintf("No panel with name %s was found", name)})
	case len(matches) > 1:
		reply(EventResponse{Reason: "This panel has multiple instances and cannot be messaged"})
	case matches[0].endpoint == nil:
		reply(EventResponse{Reason: "The target panel has no associated sender and cannot be messaged"})
	default:
		ep := matches[0].endpoint
		go func() {
			reply(ep.Exchange(ActionEvent(payload)))
		}()
	}
	return false
}

// handleBarMessage handles dot-less messages: quit and whole-bar visibility.
// Unrecognized messages are ignored with a success response.
func (b *Bar) handleBarMessage(message string, reply func(EventResponse)) bool {
	switch message {
	case "quit":
		reply(EventResponse{})
		return true
	case "show":
		b.setMapped(true)
		reply(EventResponse{})
	case "hide":
		b.setMapped(false)
		reply(EventResponse{})
	case "toggle":
		b.setMapped(!b.mapped)
		reply(EventResponse{})
	default:
		reply(EventResponse{})
	}
	return false
}

// handleVisibilityMessage toggles one panel's visible flag by alignment and
// index, then repaints the affected groups. Unparseable messages and
// out-of-range indexes are ignored.
func (b *Bar) handleVisibilityMessage(message string) EventResponse {
	m := visibilityMsg.FindStringSubmatch(message)
	if m == nil {
		return EventResponse{}
	}
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return EventResponse{Reason: err.Error()}
	}

	var alignment Alignment
	switch m[1] {
	case "l":
		alignment = AlignLeft
	case "c":
		alignment = AlignCenter
	case "r":
		alignment = AlignRight
	}
	panels := b.group(alignment)
	if idx >= len(panels) {
		return EventResponse{}
	}
	p := panels[idx]

	switch m[3] {
	case "show":
		p.visible = true
	case "hide":
		p.visible = false
	case "toggle":
		p.visible = !p.visible
	default:
		return EventResponse{Reason: fmt.Sprintf("Unknown message %s", m[3])}
	}

	var redrawErr error
	switch alignment {
	case AlignLeft:
		redrawErr = b.redrawLeft()
	case AlignCenter:
		redrawErr = b.redrawCenterRight(true)
	case AlignRight:
		redrawErr = b.redrawRight(true, nil)
	}
	if redrawErr != nil {
		b.log.Printf("repaint after visibility message %q: %v", message, redrawErr)
		return EventResponse{Reason: redrawErr.Error()}
	}
	return EventResponse{}
}
