package sim

import (
	"log/slog"
	"sync"
)

type job struct {
	label string
	fn    func()
}

// Scheduler runs submitted work in FIFO order. Work submitted while the queue
// is draining waits until the running item returns.
type Scheduler struct {
	mu       sync.Mutex
	queue    []job
	draining bool
	done     int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Submit queues fn. When nothing is draining the queue runs to exhaustion on
// the caller's goroutine before Submit returns.
func (s *Scheduler) Submit(label string, fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, job{label: label, fn: fn})
	if s.draining {
		queued := len(s.queue)
		s.mu.Unlock()
		slog.Debug("Work queued", "label", label, "queued", queued)
		return
	}
	s.draining = true
	s.mu.Unlock()
	s.drain()
}

// Pending returns the number of items waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Done returns the number of items that have run.
func (s *Scheduler) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.run(next)
	}
}

func (s *Scheduler) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Work panicked", "label", j.label, "panic", r)
		}
		s.mu.Lock()
		s.done++
		s.mu.Unlock()
	}()
	slog.Debug("Running work", "label", j.label)
	j.fn()
}
