package app

// ViewStack is the last-in-first-out sequence of active UI modes. The
// bottom entry is the root and is never removed, so the stack is never
// empty and Current never returns nil.
type ViewStack struct {
	items []View
}

func NewViewStack(root View) ViewStack {
	return ViewStack{items: []View{root}}
}

func (s *ViewStack) Push(v View) {
	if v == nil {
		return
	}
	s.items = append(s.items, v)
}

// Pop removes the top view. Popping with only the root left is a no-op:
// an empty stack would be unrenderable.
func (s *ViewStack) Pop() {
	if len(s.items) <= 1 {
		return
	}
	s.items = s.items[:len(s.items)-1]
}

// Current returns the active (top) view.
func (s *ViewStack) Current() View {
	return s.items[len(s.items)-1]
}

func (s *ViewStack) Len() int { return len(s.items) }

// RenderChain returns the views to paint, bottom first: the nearest
// non-overlay view and every overlay above it.
func (s *ViewStack) RenderChain() []View {
	start := 0
	for i := len(s.items) - 1; i >= 0; i-- {
		if !s.items[i].Overlay() {
			start = i
			break
		}
	}
	return s.items[start:]
}
