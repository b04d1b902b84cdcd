package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceMsg is delivered when a scheduled tick elapses.
type debounceMsg struct {
	key string
	gen int
}

// Debouncer collapses a burst of Schedule calls into one message. Every call
// to Schedule, Cancel or RunNow bumps the generation, so only the tick of the
// last Schedule is honoured by Fire.
type Debouncer struct {
	key     string
	gen     int
	pending bool
}

// NewDebouncer returns a debouncer whose messages carry key.
func NewDebouncer(key string) *Debouncer {
	return &Debouncer{key: key}
}

// Schedule arms the debouncer. A zero or negative delay fires on the next
// turn of the event loop.
func (d *Debouncer) Schedule(delay time.Duration) tea.Cmd {
	d.gen++
	d.pending = true
	msg := debounceMsg{key: d.key, gen: d.gen}
	if delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

// Cancel drops the pending tick, if any.
func (d *Debouncer) Cancel() {
	d.gen++
	d.pending = false
}

// RunNow cancels the pending tick and reports whether one was armed. The
// caller runs the action itself.
func (d *Debouncer) RunNow() bool {
	was := d.pending
	d.Cancel()
	return was
}

// Pending reports whether a tick is armed.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Fire reports whether msg is the live tick of this debouncer and disarms it.
func (d *Debouncer) Fire(msg tea.Msg) bool {
	m, ok := msg.(debounceMsg)
	if !ok || m.key != d.key || m.gen != d.gen || !d.pending {
		return false
	}
	d.pending = false
	return true
}
