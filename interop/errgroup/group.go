// Package errgroup joins a set of executor tasks through
// golang.org/x/sync/errgroup, so callers can wait on just the tasks they
// submitted instead of every live task of the runtime.
package errgroup

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-whorl/executor"
)

// Group tracks tasks submitted through it.
type Group struct {
	rt  *executor.Runtime
	g   *errgroup.Group
	ctx context.Context
}

// WithContext creates a Group submitting to rt (the process-wide runtime when
// rt is nil). Wait stops waiting with ctx.Err() once ctx ends; the tasks
// themselves keep running since the executor has no cancellation.
func WithContext(ctx context.Context, rt *executor.Runtime) (*Group, context.Context) {
	if rt == nil {
		rt = executor.Default()
	}
	g, gctx := errgroup.WithContext(ctx)
	return &Group{rt: rt, g: g, ctx: gctx}, gctx
}

// Spawn submits f as fair work and joins it.
func (g *Group) Spawn(f executor.Future) {
	if f == nil {
		return
	}
	j := newJoined(f)
	g.rt.Spawn(j)
	g.g.Go(g.waiter(j))
}

// BlockOn submits f as blocking work and joins it.
func (g *Group) BlockOn(f executor.Future) {
	if f == nil {
		return
	}
	j := newJoined(f)
	g.rt.BlockOn(j)
	g.g.Go(g.waiter(j))
}

// Wait blocks until every joined task is Ready, or returns the context error.
func (g *Group) Wait() error {
	return g.g.Wait()
}

func (g *Group) waiter(j *joined) func() error {
	return func() error {
		select {
		case <-j.done:
			return nil
		case <-g.ctx.Done():
			return g.ctx.Err()
		}
	}
}

type joined struct {
	f    executor.Future
	done chan struct{}
	once sync.Once
}

func newJoined(f executor.Future) *joined {
	return &joined{f: f, done: make(chan struct{})}
}

func (j *joined) Poll(w executor.Waker) executor.Status {
	if j.f.Poll(w) != executor.Ready {
		return executor.Suspended
	}
	j.once.Do(func() { close(j.done) })
	return executor.Ready
}
