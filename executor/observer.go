package executor

import (
	"context"
	"time"
)

// Observer receives runtime and task lifecycle events. Hooks run on the
// goroutine that triggered them; TaskPolled and TaskCompleted run on the worker.
type Observer interface {
	RuntimeStarted(ctx context.Context, id string)
	RuntimeStopped(ctx context.Context, id string)
	TaskSpawned(ctx context.Context, id TaskID, blocking bool)
	TaskPolled(ctx context.Context, id TaskID, status Status, dur time.Duration)
	TaskCompleted(ctx context.Context, id TaskID, lifetime time.Duration, panicked bool)
}

// Observers fans every event out to each non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var m multiObserver
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}

type multiObserver []Observer

func (m multiObserver) RuntimeStarted(ctx context.Context, id string) {
	for _, o := range m {
		o.RuntimeStarted(ctx, id)
	}
}

func (m multiObserver) RuntimeStopped(ctx context.Context, id string) {
	for _, o := range m {
		o.RuntimeStopped(ctx, id)
	}
}

func (m multiObserver) TaskSpawned(ctx context.Context, id TaskID, blocking bool) {
	for _, o := range m {
		o.TaskSpawned(ctx, id, blocking)
	}
}

func (m multiObserver) TaskPolled(ctx context.Context, id TaskID, status Status, dur time.Duration) {
	for _, o := range m {
		o.TaskPolled(ctx, id, status, dur)
	}
}

func (m multiObserver) TaskCompleted(ctx context.Context, id TaskID, lifetime time.Duration, panicked bool) {
	for _, o := range m {
		o.TaskCompleted(ctx, id, lifetime, panicked)
	}
}
