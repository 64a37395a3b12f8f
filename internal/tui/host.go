// Package tui is the terminal side of the application. It owns the
// bubbletea program, forwards key presses to the event producer's input
// channel, and displays the frames the core loop pushes back.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/app"
)

type frameMsg string

type quitMsg struct{}

// Host runs the terminal program. It performs no event processing of its
// own; every key press travels through the bus and comes back as a frame.
type Host struct {
	program *tea.Program
	keys    chan tea.KeyMsg
}

func NewHost(a *app.App) *Host {
	keys := make(chan tea.KeyMsg, 64)
	m := &model{app: a, keys: keys}
	return &Host{
		program: tea.NewProgram(m, tea.WithAltScreen()),
		keys:    keys,
	}
}

// Keys is the raw input channel consumed by the event producer.
func (h *Host) Keys() <-chan tea.KeyMsg { return h.keys }

// ShowFrame displays a composed frame. Safe to call from the core loop.
func (h *Host) ShowFrame(frame string) { h.program.Send(frameMsg(frame)) }

// Shutdown asks the terminal program to exit.
func (h *Host) Shutdown() { h.program.Send(quitMsg{}) }

// Run blocks until the terminal program exits.
func (h *Host) Run() error {
	_, err := h.program.Run()
	return err
}

type model struct {
	app   *app.App
	keys  chan<- tea.KeyMsg
	frame string
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// drop input rather than block the render loop if the core stalls
		select {
		case m.keys <- msg:
		default:
		}
	case tea.WindowSizeMsg:
		m.app.Resize(msg.Width, msg.Height)
	case frameMsg:
		m.frame = string(msg)
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) View() string { return m.frame }
