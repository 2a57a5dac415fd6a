package futures

import (
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/NetPo4ki/go-whorl/clock"
	"github.com/NetPo4ki/go-whorl/executor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countWaker struct{ n atomic.Int32 }

func (w *countWaker) Wake() { w.n.Add(1) }

func TestSleepOnFakeClock(t *testing.T) {
	t.Parallel()
	c := clock.NewFake(time.Unix(0, 0))
	s := SleepOn(c, 300*time.Millisecond)
	w := &countWaker{}
	for i := 0; i < 3; i++ {
		if got := s.Poll(w); got != executor.Suspended {
			t.Fatalf("poll %d before deadline: got %v", i, got)
		}
		c.Advance(99 * time.Millisecond)
	}
	// 297ms elapsed
	if got := s.Poll(w); got != executor.Suspended {
		t.Fatalf("poll just before deadline: got %v", got)
	}
	c.Advance(3 * time.Millisecond)
	if got := s.Poll(w); got != executor.Ready {
		t.Fatalf("poll at deadline: got %v", got)
	}
	c.Advance(time.Second)
	if got := s.Poll(w); got != executor.Ready {
		t.Fatalf("poll after deadline: got %v", got)
	}
	if w.n.Load() != 0 {
		t.Fatal("sleep must not use the waker")
	}
}

func TestSleepMeasuresFromCreation(t *testing.T) {
	t.Parallel()
	c := clock.NewFake(time.Unix(0, 0))
	s := SleepOn(c, 50*time.Millisecond)
	c.Advance(50 * time.Millisecond)
	if got := s.Poll(&countWaker{}); got != executor.Ready {
		t.Fatalf("first poll after deadline: got %v", got)
	}
}

func TestZeroSleepIsReady(t *testing.T) {
	t.Parallel()
	if got := Sleep(0).Poll(&countWaker{}); got != executor.Ready {
		t.Fatalf("got %v, want ready", got)
	}
}

func TestTimerWakesOnce(t *testing.T) {
	t.Parallel()
	tm := Timer(20 * time.Millisecond)
	w := &countWaker{}
	if got := tm.Poll(w); got != executor.Suspended {
		t.Fatalf("first poll: got %v", got)
	}
	if got := tm.Poll(w); got != executor.Suspended {
		t.Fatalf("second poll: got %v", got)
	}
	deadline := time.After(time.Second)
	for w.n.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("timer never woke its task")
		case <-time.After(time.Millisecond):
		}
	}
	if got := tm.Poll(w); got != executor.Ready {
		t.Fatalf("poll after wake: got %v", got)
	}
	if got := w.n.Load(); got != 1 {
		t.Fatalf("expected a single wake, got %d", got)
	}
}

func TestCountdown(t *testing.T) {
	t.Parallel()
	f := Countdown(3)
	w := &countWaker{}
	for i := 0; i < 3; i++ {
		if got := f.Poll(w); got != executor.Suspended {
			t.Fatalf("poll %d: got %v", i, got)
		}
	}
	if got := f.Poll(w); got != executor.Ready {
		t.Fatalf("final poll: got %v", got)
	}
}

func TestSeqRunsInOrder(t *testing.T) {
	t.Parallel()
	var order []string
	f := Seq(
		Do(func() { order = append(order, "a") }),
		Countdown(2),
		Then(Countdown(1), func() { order = append(order, "b") }),
		nil,
		Do(func() { order = append(order, "c") }),
	)
	w := &countWaker{}
	polls := 1
	for f.Poll(w) != executor.Ready {
		polls++
	}
	if polls != 4 {
		t.Fatalf("expected 4 polls, got %d", polls)
	}
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}
