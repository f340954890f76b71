// internal/celebrate/scheduler.go
//
// Timed playback of an effect sequence.
//
// Behaviour:
//   - Steps at offset zero are delivered synchronously by Play.
//   - Later steps each get one timer; a generation counter discards a
//     timer that fires after its sequence was replaced or cancelled.
//   - Only one sequence plays at a time.

package celebrate

import (
	"sync"
	"time"
)

// Sink receives effects as they fire. It is called with the scheduler's
// lock held and must not call back into the scheduler.
type Sink func(Effect)

// Scheduler plays one sequence at a time. Playing a new sequence or
// calling Cancel stops whatever is still pending.
type Scheduler struct {
	sink Sink

	mu     sync.Mutex
	gen    uint64
	timers []*time.Timer
}

// NewScheduler constructs a Scheduler delivering to sink.
func NewScheduler(sink Sink) *Scheduler {
	return &Scheduler{sink: sink}
}

// Play cancels any in-flight sequence and schedules seq. Effects with a
// non-positive offset are delivered before Play returns.
func (s *Scheduler) Play(seq []Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	gen := s.gen
	for _, e := range seq {
		if e.At <= 0 {
			s.sink(e)
			continue
		}
		e := e
		s.timers = append(s.timers, time.AfterFunc(e.At, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			// A timer that fired while Cancel held the lock must not leak
			// into the next sequence.
			if s.gen != gen {
				return
			}
			s.sink(e)
		}))
	}
}

// Cancel stops every pending effect and reports how many were stopped.
func (s *Scheduler) Cancel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Scheduler) stopLocked() int {
	s.gen++
	stopped := 0
	for _, t := range s.timers {
		if t.Stop() {
			stopped++
		}
	}
	s.timers = nil
	return stopped
}
