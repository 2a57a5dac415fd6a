package executor

import (
	"sync"
	"sync/atomic"
	"time"
)

// TaskID identifies a task within its Runtime.
type TaskID uint64

// Task owns one suspended computation and acts as its own Waker.
type Task struct {
	id       TaskID
	blocking bool
	rt       *Runtime
	created  time.Time

	mu  sync.Mutex
	fut Future

	done     atomic.Bool
	queued   atomic.Bool
	released atomic.Bool
}

func newTask(rt *Runtime, blocking bool, fut Future) *Task {
	rt.live.Add(1)
	t := &Task{
		id:       TaskID(rt.nextID.Add(1)),
		blocking: blocking,
		rt:       rt,
		created:  time.Now(),
		fut:      fut,
	}
	if rt.obs != nil {
		rt.obs.TaskSpawned(rt.ctx, t.id, blocking)
	}
	return t
}

func (t *Task) ID() TaskID { return t.id }

func (t *Task) Blocking() bool { return t.blocking }

// Done reports whether the computation has returned Ready.
func (t *Task) Done() bool { return t.done.Load() }

// Poll drives the computation one step under the task's lock. A finished task
// keeps reporting Ready without touching the computation again.
func (t *Task) Poll() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done.Load() {
		return Ready
	}
	if t.fut.Poll(t) != Ready {
		return Suspended
	}
	t.fut = nil
	t.done.Store(true)
	return Ready
}

// Wake resubmits the task: front of the queue when blocking, back otherwise.
func (t *Task) Wake() {
	if t.done.Load() {
		return
	}
	if t.blocking {
		t.rt.spawner.SpawnBlocking(t)
	} else {
		t.rt.spawner.Spawn(t)
	}
}

// release drops the task's contribution to the live counter. Only the first
// call has an effect.
func (t *Task) release(panicked bool) {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	lifetime := time.Since(t.created)
	t.rt.log.Debug("task completed",
		F("runtime", t.rt.id), F("task", t.id), F("blocking", t.blocking), F("lifetime", lifetime))
	if t.rt.obs != nil {
		t.rt.obs.TaskCompleted(t.rt.ctx, t.id, lifetime, panicked)
	}
	// Wait observes only the counter, so it must drop after the hooks ran.
	t.rt.live.Add(-1)
}
