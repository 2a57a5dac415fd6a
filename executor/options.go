package executor

import "time"

// WakePolicy decides how a task that returned Suspended gets its next turn.
type WakePolicy int

const (
	// EagerRepoll re-enqueues every suspended task right away.
	EagerRepoll WakePolicy = iota
	// NotifyOnWake leaves a suspended task parked until its Waker fires.
	NotifyOnWake
)

func (p WakePolicy) String() string {
	switch p {
	case EagerRepoll:
		return "eager"
	case NotifyOnWake:
		return "notify"
	default:
		return "unknown"
	}
}

// IdleStrategy decides what the worker and Wait do while there is nothing to observe.
type IdleStrategy int

const (
	// SpinIdle busy-waits, yielding the processor between checks.
	SpinIdle IdleStrategy = iota
	// SleepIdle sleeps for Options.IdleInterval between checks.
	SleepIdle
)

func (s IdleStrategy) String() string {
	switch s {
	case SpinIdle:
		return "spin"
	case SleepIdle:
		return "sleep"
	default:
		return "unknown"
	}
}

type Option func(*Options)

type Options struct {
	WakePolicy   WakePolicy
	Idle         IdleStrategy
	IdleInterval time.Duration
	QueuedGuard  bool
	PanicHandler func(id TaskID, recovered any)
	Observer     Observer
	Logger       Logger
}

func defaultOptions() Options {
	return Options{
		WakePolicy:   EagerRepoll,
		Idle:         SpinIdle,
		IdleInterval: time.Millisecond,
	}
}

func WithWakePolicy(p WakePolicy) Option { return func(o *Options) { o.WakePolicy = p } }

func WithIdle(s IdleStrategy) Option { return func(o *Options) { o.Idle = s } }

func WithIdleInterval(d time.Duration) Option { return func(o *Options) { o.IdleInterval = d } }

// WithQueuedGuard keeps a task from being enqueued again while it already
// waits in the queue.
func WithQueuedGuard(v bool) Option { return func(o *Options) { o.QueuedGuard = v } }

// WithPanicHandler recovers panics raised by a poll. The panicking task is
// dropped and fn receives the recovered value. Without a handler a panic
// takes down the worker and the process.
func WithPanicHandler(fn func(id TaskID, recovered any)) Option {
	return func(o *Options) { o.PanicHandler = fn }
}

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func WithLogger(l Logger) Option { return func(o *Options) { o.Logger = l } }
