package futures

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/NetPo4ki/go-whorl/clock"
	"github.com/NetPo4ki/go-whorl/executor"
)

// SleepFuture becomes Ready once its duration has elapsed since creation.
// It registers no wake source and depends on the scheduler polling it again.
type SleepFuture struct {
	clock   clock.Clock
	created time.Time
	d       time.Duration
}

// Sleep measures d against the system clock, starting now.
func Sleep(d time.Duration) *SleepFuture {
	return SleepOn(clock.System, d)
}

func SleepOn(c clock.Clock, d time.Duration) *SleepFuture {
	return &SleepFuture{clock: c, created: c.Now(), d: d}
}

func (s *SleepFuture) Poll(executor.Waker) executor.Status {
	if s.clock.Since(s.created) >= s.d {
		return executor.Ready
	}
	return executor.Suspended
}

// TimerFuture becomes Ready after d, and wakes its task from a timer
// goroutine when d runs out. It is the notify-driven counterpart of Sleep.
type TimerFuture struct {
	created time.Time
	d       time.Duration
	arm     sync.Once
	fired   atomic.Bool
}

func Timer(d time.Duration) *TimerFuture {
	return &TimerFuture{created: time.Now(), d: d}
}

func (t *TimerFuture) Poll(w executor.Waker) executor.Status {
	if t.fired.Load() {
		return executor.Ready
	}
	remaining := t.d - time.Since(t.created)
	if remaining <= 0 {
		t.fired.Store(true)
		return executor.Ready
	}
	t.arm.Do(func() {
		time.AfterFunc(remaining, func() {
			t.fired.Store(true)
			w.Wake()
		})
	})
	return executor.Suspended
}
