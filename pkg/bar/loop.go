package bar

import (
	"context"
	"time"
)

// shutdownTimeout bounds the teardown hook sequence.
const shutdownTimeout = 3 * time.Second

// InputEvent is an event from the terminal surface.
type InputEvent any

// ResizeEvent reports a new surface size in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// ClickEvent is a raw button press: code 1-5, bar-relative coordinates.
type ClickEvent struct {
	Button int
	X      int
	Y      int
}

// SurfaceClosed reports that the surface is gone; the bar cannot continue.
type SurfaceClosed struct {
	Err error
}

// Message is one IPC message with its response hook. Reply is called exactly
// once, possibly from another goroutine.
type Message struct {
	Text  string
	Reply func(EventResponse)
}

// Run is the bar's event loop: one goroutine multiplexing surface input,
// panel updates, and IPC messages until shutdown. All bar state mutation
// happens here. Returns nil on orderly shutdown (signal or quit message) and
// the surface error when the surface fails.
func (b *Bar) Run(ctx context.Context, cancel context.CancelFunc, inputs <-chan InputEvent, updates <-chan Sourced, messages <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			b.teardown()
			return nil

		case ev, ok := <-inputs:
			if !ok {
				cancel()
				b.teardown()
				return nil
			}
			switch e := ev.(type) {
			case ResizeEvent:
				if err := b.Resize(e.Width, e.Height); err != nil {
					b.log.Printf("relayout after resize: %v", err)
				}
			case ClickEvent:
				b.ProcessClick(e.Button, e.X, e.Y)
			case SurfaceClosed:
				cancel()
				b.teardown()
				return e.Err
			default:
				b.log.Printf("ignoring surface event %T", ev)
			}

		case u := <-updates:
			if u.Update.Err != nil {
				b.log.Printf("panel update error [%s %d]: %v", u.Alignment, u.Index, u.Update.Err)
				continue
			}
			if err := b.UpdatePanel(u.Alignment, u.Index, u.Update.Info); err != nil {
				b.log.Printf("redraw failed [%s %d]: %v", u.Alignment, u.Index, err)
			}

		case m := <-messages:
			if b.HandleMessage(m.Text, m.Reply) {
				b.log.Printf("bar %s: quit requested over IPC", b.name)
				cancel()
				b.teardown()
				return nil
			}
		}
	}
}

// teardown runs every panel's shutdown hook, bounded by shutdownTimeout.
func (b *Bar) teardown() {
	done := make(chan struct{})
	go func() {
		b.shutdownPanels()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		b.log.Printf("bar %s: shutdown hooks timed out after %v", b.name, shutdownTimeout)
	}
}
