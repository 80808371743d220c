// Package display implements the terminal surface: a bubbletea program that
// shows the bar's composed frame and feeds mouse and resize input back to
// the engine.
package display

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/b/ledge/pkg/bar"
)

// frameMsg carries one composed frame from the engine.
type frameMsg string

// visibleMsg toggles whole-bar visibility.
type visibleMsg bool

// Surface owns the bubbletea program. It is the engine's flush target; input
// the program receives comes back out on Inputs.
type Surface struct {
	barHeight int
	program   *tea.Program
	inputs    chan bar.InputEvent
	done      chan struct{}
}

// New builds the surface for one bar. barHeight is the configured row count;
// resize events report the terminal's new width with that height.
func New(barHeight int) *Surface {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	s := &Surface{
		barHeight: barHeight,
		inputs:    make(chan bar.InputEvent, 64),
		done:      make(chan struct{}),
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	m := model{surface: s, spin: spin, visible: true}
	s.program = tea.NewProgram(m, tea.WithMouseCellMotion())
	return s
}

// Start runs the program in the background. Program exit, orderly or not, is
// reported as a SurfaceClosed input.
func (s *Surface) Start() {
	go func() {
		defer close(s.done)
		_, err := s.program.Run()
		s.send(bar.SurfaceClosed{Err: err})
	}()
}

// Stop quits the program and waits for the terminal to be restored.
func (s *Surface) Stop() {
	s.program.Quit()
	<-s.done
}

// Inputs is the stream of surface events for the engine loop.
func (s *Surface) Inputs() <-chan bar.InputEvent { return s.inputs }

// Flush hands a composed frame to the program.
func (s *Surface) Flush(frame string) {
	s.program.Send(frameMsg(frame))
}

// SetBarVisible shows or hides the whole bar.
func (s *Surface) SetBarVisible(visible bool) {
	s.program.Send(visibleMsg(visible))
}

// send forwards an event without ever blocking the UI loop. The engine
// drains promptly; a full buffer means it is already gone.
func (s *Surface) send(ev bar.InputEvent) {
	select {
	case s.inputs <- ev:
	default:
	}
}

// buttonCode maps a bubbletea mouse button to the raw 1-5 code the router
// translates. Zero means not a button the bar routes.
func buttonCode(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonLeft:
		return 1
	case tea.MouseButtonMiddle:
		return 2
	case tea.MouseButtonRight:
		return 3
	case tea.MouseButtonWheelUp:
		return 4
	case tea.MouseButtonWheelDown:
		return 5
	}
	return 0
}

type model struct {
	surface *Surface
	spin    spinner.Model
	frame   string
	started bool
	visible bool
}

func (m model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.surface.send(bar.SurfaceClosed{})
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			if code := buttonCode(msg.Button); code != 0 {
				m.surface.send(bar.ClickEvent{Button: code, X: msg.X, Y: msg.Y})
			}
		}

	case tea.WindowSizeMsg:
		m.surface.send(bar.ResizeEvent{Width: msg.Width, Height: m.surface.barHeight})

	case frameMsg:
		m.frame = string(msg)
		m.started = true

	case visibleMsg:
		m.visible = bool(msg)

	case spinner.TickMsg:
		if !m.started {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) View() string {
	if !m.visible {
		return ""
	}
	if !m.started {
		return m.spin.View() + " starting"
	}
	return m.frame
}
