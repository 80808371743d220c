package bar

import (
	"encoding/json"
	"sync"
)

// Event is a value delivered to a panel's event channel: a MouseEvent or an
// ActionEvent.
type Event any

// MouseButton is the logical button of a click routed to a panel.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseScrollUp
	MouseScrollDown
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	case MouseScrollUp:
		return "scroll_up"
	case MouseScrollDown:
		return "scroll_down"
	}
	return "unknown"
}

// translateButton maps a raw button code 1-5 to a logical button, swapping
// the scroll directions when reverse scrolling is configured.
func translateButton(code int, reverseScroll bool) (MouseButton, bool) {
	switch code {
	case 1:
		return MouseLeft, true
	case 2:
		return MouseMiddle, true
	case 3:
		return MouseRight, true
	case 4:
		if reverseScroll {
			return MouseScrollUp, true
		}
		return MouseScrollDown, true
	case 5:
		if reverseScroll {
			return MouseScrollDown, true
		}
		return MouseScrollUp, true
	}
	return 0, false
}

// MouseEvent is a click delivered to a panel. X is relative to the panel's
// left edge; Y is relative to the bar.
type MouseEvent struct {
	Button MouseButton
	X      int
	Y      int
}

// ActionEvent is a message payload delivered to a panel over IPC.
type ActionEvent string

// EventResponse reports the outcome of delivering an event to a panel. The
// zero value is success.
type EventResponse struct {
	Reason string
}

// OK reports whether the event succeeded.
func (r EventResponse) OK() bool { return r.Reason == "" }

// JSON renders the wire form: {"success":"true"} or
// {"success":"false","reason":"..."}.
func (r EventResponse) JSON() string {
	if r.OK() {
		return `{"success":"true"}`
	}
	b, err := json.Marshal(struct {
		Success string `json:"success"`
		Reason  string `json:"reason"`
	}{"false", r.Reason})
	if err != nil {
		return `{"success":"false","reason":"unencodable reason"}`
	}
	return string(b)
}

// Endpoint is the bar's half of a panel's bidirectional event channel. The
// panel contract is one response per event, in order; Exchange serializes
// concurrent senders so request/response pairs can't interleave.
type Endpoint struct {
	mu   sync.Mutex
	send chan<- Event
	recv <-chan EventResponse
}

// NewEndpoint builds an endpoint plus the panel-side channel pair. The panel
// receives on events and must reply once per event on responses, closing
// responses when it stops handling events.
func NewEndpoint(buffer int) (ep *Endpoint, events <-chan Event, responses chan<- EventResponse) {
	ev := make(chan Event, buffer)
	re := make(chan EventResponse, buffer)
	return &Endpoint{send: ev, recv: re}, ev, re
}

// Exchange delivers one event and waits for its response. A closed response
// channel counts as success (the panel stopped listening).
func (e *Endpoint) Exchange(ev Event) EventResponse {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.send <- ev
	resp, ok := <-e.recv
	if !ok {
		return EventResponse{}
	}
	return resp
}
