package executor

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type recordObserver struct {
	started   atomic.Int64
	stopped   atomic.Int64
	spawned   atomic.Int64
	blocking  atomic.Int64
	polled    atomic.Int64
	suspended atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
}

func (o *recordObserver) RuntimeStarted(context.Context, string) { o.started.Add(1) }
func (o *recordObserver) RuntimeStopped(context.Context, string) { o.stopped.Add(1) }
func (o *recordObserver) TaskSpawned(_ context.Context, _ TaskID, blocking bool) {
	o.spawned.Add(1)
	if blocking {
		o.blocking.Add(1)
	}
}
func (o *recordObserver) TaskPolled(_ context.Context, _ TaskID, status Status, _ time.Duration) {
	o.polled.Add(1)
	if status == Suspended {
		o.suspended.Add(1)
	}
}
func (o *recordObserver) TaskCompleted(_ context.Context, _ TaskID, _ time.Duration, panicked bool) {
	o.completed.Add(1)
	if panicked {
		o.panicked.Add(1)
	}
}

func TestObserverHooks(t *testing.T) {
	t.Parallel()
	obs := &recordObserver{}
	rt := New(WithObserver(obs), WithPanicHandler(func(TaskID, any) {}))
	rt.Spawn(suspendN(2, nil))
	rt.BlockOn(suspendN(3, nil))
	rt.Spawn(suspendN(1, func() { panic("x") }))
	rt.Wait()
	rt.Close()
	if obs.started.Load() != 1 || obs.stopped.Load() != 1 {
		t.Fatalf("runtime hooks: started=%d stopped=%d", obs.started.Load(), obs.stopped.Load())
	}
	if obs.spawned.Load() != 3 || obs.blocking.Load() != 1 {
		t.Fatalf("spawn hooks: spawned=%d blocking=%d", obs.spawned.Load(), obs.blocking.Load())
	}
	if obs.completed.Load() != 3 || obs.panicked.Load() != 1 {
		t.Fatalf("completion hooks: completed=%d panicked=%d", obs.completed.Load(), obs.panicked.Load())
	}
	if obs.polled.Load() != 9 || obs.suspended.Load() != 6 {
		t.Fatalf("poll hooks: polled=%d suspended=%d", obs.polled.Load(), obs.suspended.Load())
	}
}

func TestObserversFanOut(t *testing.T) {
	t.Parallel()
	if Observers() != nil || Observers(nil, nil) != nil {
		t.Fatal("expected nil observer when nothing is attached")
	}
	a := &recordObserver{}
	if Observers(nil, a) != a {
		t.Fatal("single observer should be returned as is")
	}
	b := &recordObserver{}
	rt := newTestRuntime(t, WithObserver(Observers(a, b)))
	rt.Spawn(readyFuture())
	rt.Wait()
	if a.completed.Load() != 1 || b.completed.Load() != 1 {
		t.Fatalf("fan-out missed an observer: a=%d b=%d", a.completed.Load(), b.completed.Load())
	}
}

func TestDefaultLoggerFormat(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)
	l.Info("task completed", F("task", 7), F("blocking", true))
	l.Error("plain")
	out := buf.String()
	if !strings.Contains(out, "[INFO] task completed {task: 7, blocking: true}") {
		t.Fatalf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] plain\n") {
		t.Fatalf("unexpected error line: %q", out)
	}
}

func TestRuntimeLogsPanic(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	rt := New(WithLogger(NewWriterLogger(&buf)), WithPanicHandler(func(TaskID, any) {}))
	rt.Spawn(FutureFunc(func(Waker) Status { panic("kaboom") }))
	rt.Wait()
	rt.Close()
	out := buf.String()
	for _, want := range []string{"[INFO] runtime started", "[ERROR] task panicked", "panic: kaboom", "[INFO] runtime stopped"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

// slowLogger delays every debug line, widening the gap between a task's
// completion and its hooks.
type slowLogger struct {
	NoOpLogger
	delay time.Duration
}

func (l *slowLogger) Debug(string, ...Field) { time.Sleep(l.delay) }

func TestWaitReturnsAfterCompletionHooks(t *testing.T) {
	t.Parallel()
	for i := 0; i < 20; i++ {
		obs := &recordObserver{}
		rt := New(WithObserver(obs), WithLogger(&slowLogger{delay: 2 * time.Millisecond}))
		rt.Spawn(suspendN(0, nil))
		rt.Wait()
		if got := obs.completed.Load(); got != 1 {
			t.Fatalf("run %d: Wait returned with completed=%d", i, got)
		}
		rt.Close()
	}
}
