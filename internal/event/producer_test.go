package event

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProducerEmitsTicks(t *testing.T) {
	t.Parallel()
	b := NewBus()
	p := NewProducer(b, nil, time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	deadline := time.After(time.Second)
	for b.Len() < 3 {
		select {
		case <-deadline:
			t.Fatal("producer emitted fewer than 3 ticks in a second")
		case <-time.After(time.Millisecond):
		}
	}

	b.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after bus close")
	}

	ev, ok := b.TryNext()
	if !ok || ev.Kind != KindTick {
		t.Fatalf("expected tick at head of queue, got %+v ok=%t", ev, ok)
	}
}

func TestProducerForwardsInput(t *testing.T) {
	t.Parallel()
	b := NewBus()
	input := make(chan tea.KeyMsg, 1)
	p := NewProducer(b, input, time.Hour) // ticker effectively silent

	go p.Run()
	defer b.Close()

	input <- tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}

	ev, err := b.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Kind != KindInput || ev.Key.String() != "q" {
		t.Fatalf("expected forwarded key q, got kind %d key %q", ev.Kind, ev.Key.String())
	}
}

func TestProducerSurvivesClosedInput(t *testing.T) {
	t.Parallel()
	b := NewBus()
	input := make(chan tea.KeyMsg)
	close(input)

	p := NewProducer(b, input, time.Millisecond)
	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	// still ticking with the input source gone
	deadline := time.After(time.Second)
	for b.Len() == 0 {
		select {
		case <-deadline:
			t.Fatal("no ticks after input channel closed")
		case <-time.After(time.Millisecond):
		}
	}

	b.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after bus close")
	}
}

func TestProducerDefaultInterval(t *testing.T) {
	t.Parallel()
	p := NewProducer(NewBus(), nil, 0)
	if p.interval != DefaultTickInterval {
		t.Fatalf("expected default interval, got %v", p.interval)
	}
}
