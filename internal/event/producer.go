package event

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickInterval matches a 30fps idle-update schedule.
const DefaultTickInterval = time.Second / 30

// Producer multiplexes a fixed-rate ticker and raw terminal input into the
// bus. It terminates when the bus closes.
type Producer struct {
	bus      *Bus
	interval time.Duration
	input    <-chan tea.KeyMsg
}

// NewProducer wires a producer to the bus. input carries raw key events
// from the terminal host; interval <= 0 falls back to DefaultTickInterval.
func NewProducer(bus *Bus, input <-chan tea.KeyMsg, interval time.Duration) *Producer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Producer{bus: bus, interval: interval, input: input}
}

// Run loops until the bus closes, emitting one Tick per interval boundary
// and forwarding each input event as it arrives. The select races all wake
// sources each iteration, so ticks cannot starve input. The producer does
// nothing but forward, so it keeps up with the ticker and each interval
// boundary yields exactly one Tick on the bus.
func (p *Producer) Run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.bus.Done():
			return
		case <-ticker.C:
			p.bus.Send(Tick())
		case key, ok := <-p.input:
			if !ok {
				// input source ended; keep ticking until shutdown
				p.input = nil
				continue
			}
			p.bus.Send(Input(key))
		}
	}
}
