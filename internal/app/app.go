// Package app hosts the control core: the single-consumer event loop, the
// view navigation stack, and the service dispatch that connects events to
// storage and git.
package app

import (
	"context"
	"sync"

	"github.com/jask/gitreview/internal/event"
	"github.com/jask/gitreview/internal/widgets"
)

// RenderSink receives the composed frame after every processed event.
type RenderSink func(frame string)

// App owns the view stack and drives event processing. All state behind it
// is touched only from the processor goroutine; the one exception is the
// terminal size, which arrives from the render host and is guarded.
type App struct {
	bus       *event.Bus
	stack     ViewStack
	services  []Service
	sc        ServiceContext
	factories Factories
	sink      RenderSink

	// OnTick is the idle-update hook, invoked for every Tick event. Nil by
	// default; an extension point for animations or polling.
	OnTick func(a *App)

	running bool

	sizeMu sync.Mutex
	width  int
	height int
}

// Config wires an App.
type Config struct {
	Bus       *event.Bus
	Root      View
	Services  []Service
	Context   ServiceContext
	Factories Factories
	Sink      RenderSink
}

func New(cfg Config) *App {
	a := &App{
		bus:       cfg.Bus,
		stack:     NewViewStack(cfg.Root),
		services:  cfg.Services,
		sc:        cfg.Context,
		factories: cfg.Factories,
		sink:      cfg.Sink,
		running:   true,
		width:     100,
		height:    32,
	}
	a.sc.Events = cfg.Bus
	return a
}

// Events returns the bus; views use it to emit follow-up events.
func (a *App) Events() *event.Bus { return a.bus }

// Stack exposes the view stack for rendering and tests.
func (a *App) Stack() *ViewStack { return &a.stack }

// Resize records the terminal size. Safe to call from the render host.
func (a *App) Resize(width, height int) {
	a.sizeMu.Lock()
	a.width, a.height = width, height
	a.sizeMu.Unlock()
}

func (a *App) size() (int, int) {
	a.sizeMu.Lock()
	defer a.sizeMu.Unlock()
	return a.width, a.height
}

// Run drives the loop: paint, wait for the next event, process, repeat.
// It returns nil after a Quit event and an error only when the bus is
// closed underneath the consumer.
func (a *App) Run(ctx context.Context) error {
	for a.running {
		a.paint()
		ev, err := a.bus.Next()
		if err != nil {
			return err
		}
		a.Process(ctx, ev)
	}
	a.paint()
	return nil
}

// Quit stops the run loop after the current event finishes processing.
func (a *App) Quit() { a.running = false }

// Running reports whether the loop will continue.
func (a *App) Running() bool { return a.running }

func (a *App) paint() {
	if a.sink == nil {
		return
	}
	a.sink(a.RenderFrame())
}

// RenderFrame composes the current UI into a width×height character frame.
// The nearest non-overlay view paints the base; overlays above it are
// centered popups composed over that base in stack order.
func (a *App) RenderFrame() string {
	width, height := a.size()
	chain := a.stack.RenderChain()
	frame := widgets.FitCanvas(chain[0].Render(a, width, height), width, height)
	for _, v := range chain[1:] {
		frame = widgets.RenderPopup(frame, v.Render(a, width, height), width, height)
	}
	return frame
}
