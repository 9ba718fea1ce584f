package textseltest

import (
	"sync"
	"time"

	"github.com/rjkroege/textsel/blink"
)

// Scheduler is a blink.Scheduler driven by Advance instead of the
// wall clock. Callbacks run on the goroutine calling Advance.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

var _ blink.Scheduler = (*Scheduler)(nil)

type manualTimer struct {
	s       *Scheduler
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) blink.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that
// comes due in timestamp order, including ones scheduled by earlier
// callbacks within the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		next := s.nextLocked(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()
		next.fn()
		s.mu.Lock()
	}
	s.now = target
	s.prunelocked()
	s.mu.Unlock()
}

func (s *Scheduler) nextLocked(limit time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range s.timers {
		if t.fired || t.stopped || t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) prunelocked() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}

// Pending returns the number of timers that have neither fired nor
// been stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Now returns the virtual time elapsed since the Scheduler was made.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
