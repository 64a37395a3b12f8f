package app

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gitreview/internal/event"
)

// Process runs one event through the dispatch pipeline: services in
// registration order, then the active view, then the global navigation
// table. Events emitted along the way are appended to the bus, never
// processed inline, so cascades settle breadth-first in FIFO order.
func (a *App) Process(ctx context.Context, ev *event.Event) {
	switch ev.Kind {
	case event.KindTick:
		if a.OnTick != nil {
			a.OnTick(a)
		}
	case event.KindInput:
		a.handleKey(ev.Key)
	case event.KindApp:
		a.handleApp(ctx, ev.App)
	}
}

func (a *App) handleKey(key tea.KeyMsg) {
	if err := a.stack.Current().HandleKey(a, key); err != nil {
		log.Printf("view %s: key %q: %v", a.stack.Current().Kind(), key.String(), err)
	}
}

func (a *App) handleApp(ctx context.Context, ev event.AppEvent) {
	for _, svc := range a.services {
		if err := svc.HandleApp(ctx, ev, &a.sc); err != nil {
			// services report domain failures as events; this is residue
			log.Printf("service %T: %v", svc, err)
		}
	}

	a.stack.Current().HandleApp(a, ev)

	a.transition(ev)
}

// transition is the fixed global table of navigation effects. It is the
// only place views are pushed and popped.
func (a *App) transition(ev event.AppEvent) {
	switch ev := ev.(type) {
	case event.Quit:
		a.Quit()

	case event.ViewClose:
		a.stack.Pop()

	case event.ReviewCreateOpen:
		a.stack.Push(a.factories.ReviewCreate())
		a.bus.SendApp(event.BranchesLoad{})

	case event.ReviewDetailsOpen:
		a.stack.Push(a.factories.ReviewDetails(ev.ReviewID))
		a.bus.SendApp(event.ReviewLoad{ReviewID: ev.ReviewID})
		a.bus.SendApp(event.DiffLoad{ReviewID: ev.ReviewID})
		a.bus.SendApp(event.FileViewsLoad{ReviewID: ev.ReviewID})
		a.bus.SendApp(event.CommentCountsLoad{ReviewID: ev.ReviewID})

	case event.ReviewDeleteConfirm:
		a.stack.Push(a.factories.Confirm(
			"Delete this review and all of its comments?",
			event.ReviewDelete{ReviewID: ev.ReviewID},
			event.ViewClose{},
		))

	case event.ReviewRefreshOpen:
		a.stack.Push(a.factories.RefreshDialog(ev.ReviewID))

	case event.CommentsOpen:
		a.stack.Push(a.factories.Comments(ev.ReviewID, ev.FilePath, ev.Line))
		a.bus.SendApp(event.CommentsLoad{ReviewID: ev.ReviewID, FilePath: ev.FilePath, Line: ev.Line})

	case event.HelpOpen:
		a.stack.Push(a.factories.Help(ev.Bindings))

	case event.HelpKeySelected:
		// Deliberate two-step protocol: the pop must be observed by the
		// processor before the re-issued key, so the underlying view
		// handles the key without the help overlay on screen.
		a.bus.SendApp(event.ViewClose{})
		a.bus.SendKey(ev.Key)
	}
}
