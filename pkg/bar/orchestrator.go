package bar

import (
	"context"
	"sync"

	"github.com/b/ledge/pkg/perf"
	"github.com/b/ledge/pkg/render"
)

// Producer is the contract a configured panel kind implements: a cheap
// identity accessor and a run step that starts the panel's own goroutines,
// returning its update stream and, when the panel handles events, its
// endpoint. Run must honor ctx for teardown and emit promptly (no initial
// full-interval wait).
type Producer interface {
	Props() (name string, visible bool)
	Run(ctx context.Context, h *render.Handle, defaults render.Attrs, height int) (<-chan Update, *Endpoint, error)
}

// Sourced tags an update with the panel it came from, addressing the bar's
// compacted panel arrays.
type Sourced struct {
	Alignment Alignment
	Index     int
	Update    Update
}

// slot holds one completed bring-up, still at its original configured index.
type slot struct {
	panel   *Panel
	updates <-chan Update
}

// StartPanels brings up every producer concurrently, then compacts the
// successful ones (preserving configured order) into the bar's panel arrays
// and fans all update streams into the returned channel. A producer whose
// run step fails is logged and permanently absent. Blocks until every
// bring-up has completed one way or the other.
func (b *Bar) StartPanels(ctx context.Context, h *render.Handle, defaults render.Attrs, left, center, right []Producer) <-chan Sourced {
	defer perf.Span("panel_bring_up")()

	groups := [...][]Producer{AlignLeft: left, AlignCenter: center, AlignRight: right}
	var slots [3][]*slot
	for a := range groups {
		slots[a] = make([]*slot, len(groups[a]))
	}

	var wg sync.WaitGroup
	for a := range groups {
		alignment := Alignment(a)
		for original, producer := range groups[a] {
			wg.Add(1)
			go func(alignment Alignment, original int, producer Producer) {
				defer wg.Done()
				name, visible := producer.Props()
				updates, endpoint, err := producer.Run(ctx, h, defaults, b.height)
				if err != nil {
					b.log.Printf("panel %s (%s %d) failed to start: %v", name, alignment, original, err)
					return
				}
				slots[alignment][original] = &slot{
					panel:   NewPanel(name, visible, endpoint),
					updates: updates,
				}
			}(alignment, original, producer)
		}
	}
	wg.Wait()

	out := make(chan Sourced)
	started := 0
	for a := range slots {
		alignment := Alignment(a)
		for _, sl := range slots[a] {
			if sl == nil {
				continue
			}
			group := b.groupRef(alignment)
			idx := len(*group)
			*group = append(*group, sl.panel)
			started++
			go forward(ctx, alignment, idx, sl.updates, out)
		}
	}
	b.log.Printf("bar %s: started %d of %d panels", b.name, started, len(left)+len(center)+len(right))
	return out
}

func (b *Bar) groupRef(a Alignment) *[]*Panel {
	switch a {
	case AlignLeft:
		return &b.left
	case AlignCenter:
		return &b.center
	default:
		return &b.right
	}
}

// forward pumps one panel's updates into the shared fan-in channel until the
// stream ends or the bar shuts down.
func forward(ctx context.Context, alignment Alignment, idx int, updates <-chan Update, out chan<- Sourced) {
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			select {
			case out <- Sourced{Alignment: alignment, Index: idx, Update: u}:
			case <-ctx.Done():
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
