package executor

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrClosed is returned by WaitContext when the runtime stopped while tasks
// were still live.
var ErrClosed = errors.New("executor: runtime closed")

type runtimeIDKey struct{}

// RuntimeIDFrom returns the ID of the runtime whose context is passed to
// Observer hooks.
func RuntimeIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runtimeIDKey{}).(string)
	return id, ok
}

// Runtime owns the ready queue, the spawner that feeds it, the live-task
// counter and the single worker goroutine that polls every task.
type Runtime struct {
	id      string
	queue   *Queue
	spawner Spawner
	live    atomic.Int64
	nextID  atomic.Uint64

	ctx       context.Context
	cancel    context.CancelFunc
	started   atomic.Bool
	closeOnce sync.Once
	done      chan struct{}

	opts Options
	obs  Observer
	log  Logger
}

// New builds a Runtime and starts its worker.
func New(optFns ...Option) *Runtime {
	r := newRuntime(optFns...)
	r.start()
	return r
}

func newRuntime(optFns ...Option) *Runtime {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NewNoOpLogger()
	}
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), runtimeIDKey{}, id))
	q := NewQueue()
	return &Runtime{
		id:      id,
		queue:   q,
		spawner: Spawner{queue: q, guard: opts.QueuedGuard},
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		opts:    opts,
		obs:     opts.Observer,
		log:     opts.Logger,
	}
}

func (r *Runtime) start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	r.log.Info("runtime started",
		F("runtime", r.id), F("wake", r.opts.WakePolicy), F("idle", r.opts.Idle), F("queued_guard", r.opts.QueuedGuard))
	if r.obs != nil {
		r.obs.RuntimeStarted(r.ctx, r.id)
	}
	go r.run()
}

func (r *Runtime) ID() string { return r.id }

// Spawner returns a handle to this runtime's queue.
func (r *Runtime) Spawner() Spawner { return r.spawner }

// Live is the number of tasks created and not yet completed.
func (r *Runtime) Live() int64 { return r.live.Load() }

// Queued is the current queue length.
func (r *Runtime) Queued() int { return r.queue.Len() }

// Spawn enqueues f as fire-and-forget work at the back of the queue.
func (r *Runtime) Spawn(f Future) {
	if f == nil {
		return
	}
	r.spawner.Spawn(newTask(r, false, f))
}

// BlockOn enqueues f at the front of the queue and returns immediately. Once
// the worker dequeues it, the worker polls f to completion before touching
// any other task.
func (r *Runtime) BlockOn(f Future) {
	if f == nil {
		return
	}
	r.spawner.SpawnBlocking(newTask(r, true, f))
}

// Wait spins the calling goroutine until no task is live.
func (r *Runtime) Wait() {
	for r.live.Load() > 0 {
		r.idle()
	}
}

// WaitContext is Wait with a way out: it returns ctx.Err() when ctx ends and
// ErrClosed when the runtime stops first.
func (r *Runtime) WaitContext(ctx context.Context) error {
	for r.live.Load() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-r.done:
			return ErrClosed
		default:
		}
		r.idle()
	}
	return nil
}

// Close stops the worker after its current turn. Queued tasks are left as
// they are and stay live.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		r.cancel()
		if !r.started.Load() {
			close(r.done)
			return
		}
		<-r.done
		r.log.Info("runtime stopped", F("runtime", r.id), F("live", r.live.Load()))
		if r.obs != nil {
			r.obs.RuntimeStopped(r.ctx, r.id)
		}
	})
}

func (r *Runtime) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.done)
	for r.ctx.Err() == nil {
		t, ok := r.queue.PopFront()
		if !ok {
			r.idle()
			continue
		}
		t.queued.Store(false)
		r.turn(t)
	}
}

func (r *Runtime) turn(t *Task) {
	if t.blocking {
		for r.poll(t) != Ready {
			if r.ctx.Err() != nil {
				return
			}
		}
		return
	}
	if r.poll(t) == Ready {
		return
	}
	if r.opts.WakePolicy == EagerRepoll {
		t.Wake()
	}
}

func (r *Runtime) poll(t *Task) (status Status) {
	var start time.Time
	if r.obs != nil {
		start = time.Now()
	}
	if r.opts.PanicHandler != nil {
		defer func() {
			if rec := recover(); rec != nil {
				t.done.Store(true)
				r.log.Error("task panicked", F("runtime", r.id), F("task", t.id), F("panic", rec))
				r.opts.PanicHandler(t.id, rec)
				if r.obs != nil {
					r.obs.TaskPolled(r.ctx, t.id, Ready, time.Since(start))
				}
				t.release(true)
				status = Ready
			}
		}()
	}
	status = t.Poll()
	if r.obs != nil {
		r.obs.TaskPolled(r.ctx, t.id, status, time.Since(start))
	}
	if status == Ready {
		t.release(false)
	}
	return status
}

func (r *Runtime) idle() {
	if r.opts.Idle == SleepIdle && r.opts.IdleInterval > 0 {
		time.Sleep(r.opts.IdleInterval)
		return
	}
	runtime.Gosched()
}
