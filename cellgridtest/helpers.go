package cellgridtest

import "time"

// ManualRefresh is a RefreshSource whose frames are driven explicitly
// by a test. Requested callbacks do not run until Step is called.
type ManualRefresh struct {
	queue []func(now time.Time)
	now   time.Time
}

// NewManualRefresh returns a ManualRefresh starting at the given time.
func NewManualRefresh(start time.Time) *ManualRefresh {
	return &ManualRefresh{now: start}
}

func (m *ManualRefresh) RequestFrame(f func(now time.Time)) {
	m.queue = append(m.queue, f)
}

// Pending reports how many frame callbacks are queued.
func (m *ManualRefresh) Pending() int { return len(m.queue) }

// Now returns the time the next Step will deliver.
func (m *ManualRefresh) Now() time.Time { return m.now }

// Step advances the clock by d and delivers every callback queued
// before the step. Callbacks requested while stepping are left queued
// for the next Step, matching a display that delivers at most one
// frame per refresh interval.
func (m *ManualRefresh) Step(d time.Duration) {
	m.now = m.now.Add(d)
	q := m.queue
	m.queue = nil
	for _, f := range q {
		f(m.now)
	}
}

// Run keeps stepping until the queue drains or the step limit is hit.
// It reports the number of frames delivered.
func (m *ManualRefresh) Run(d time.Duration, limit int) int {
	frames := 0
	for len(m.queue) > 0 && frames < limit {
		m.Step(d)
		frames++
	}
	return frames
}

// StubConfirmer answers every Confirm call with a fixed verdict and
// records the messages it was asked about.
type StubConfirmer struct {
	Answer   bool
	Messages []string
}

func (c *StubConfirmer) Confirm(message string) <-chan bool {
	c.Messages = append(c.Messages, message)
	ch := make(chan bool, 1)
	ch <- c.Answer
	return ch
}
