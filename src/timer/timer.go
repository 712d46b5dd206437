package timer

import (
	"log/slog"
	"time"
)

// TimeSource simulates elapsed time for door cycles and travel between floors.
type TimeSource interface {
	Pause(d time.Duration)
}

// Clock blocks the caller for real. Scale shortens or stretches every pause;
// zero means real time.
type Clock struct {
	Scale float64
}

func (c Clock) Pause(d time.Duration) {
	scaled := d
	if c.Scale > 0 {
		scaled = time.Duration(float64(d) * c.Scale)
	}
	slog.Debug("Pausing", "duration", d, "scaled", scaled)
	time.Sleep(scaled)
}

// SimClock advances virtual time without sleeping and records every pause.
type SimClock struct {
	elapsed time.Duration
	pauses  []time.Duration
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Pause(d time.Duration) {
	c.elapsed += d
	c.pauses = append(c.pauses, d)
}

func (c *SimClock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *SimClock) Pauses() []time.Duration {
	out := make([]time.Duration, len(c.pauses))
	copy(out, c.pauses)
	return out
}

// Count returns how many pauses of exactly d were recorded.
func (c *SimClock) Count(d time.Duration) int {
	n := 0
	for _, p := range c.pauses {
		if p == d {
			n++
		}
	}
	return n
}

func (c *SimClock) Reset() {
	c.elapsed = 0
	c.pauses = nil
}
