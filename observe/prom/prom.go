// Package prom provides executor observers that count runtime activity:
// Metrics keeps in-memory atomic counters, Exporter publishes Prometheus
// collectors.
package prom

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/NetPo4ki/go-whorl/executor"
)

// Metrics is a lightweight in-memory observer that maintains counters and simple sums.
type Metrics struct {
	// tasks
	liveTasks      atomic.Int64
	tasksSpawned   atomic.Int64
	blockingTasks  atomic.Int64
	tasksCompleted atomic.Int64
	tasksPanicked  atomic.Int64
	lifetimeSumNs  atomic.Int64

	// polls
	polls         atomic.Int64
	suspendedPoll atomic.Int64
	pollDurSumNs  atomic.Int64

	// runtimes
	runtimesStarted atomic.Int64
	runtimesStopped atomic.Int64
}

var _ executor.Observer = (*Metrics)(nil)

// New returns a new Metrics observer.
func New() *Metrics { return &Metrics{} }

func (m *Metrics) RuntimeStarted(_ context.Context, _ string) {
	m.runtimesStarted.Add(1)
}

func (m *Metrics) RuntimeStopped(_ context.Context, _ string) {
	m.runtimesStopped.Add(1)
}

// TaskSpawned increments live and spawned counters.
func (m *Metrics) TaskSpawned(_ context.Context, _ executor.TaskID, blocking bool) {
	m.liveTasks.Add(1)
	m.tasksSpawned.Add(1)
	if blocking {
		m.blockingTasks.Add(1)
	}
}

// TaskPolled counts polls and accumulates time spent inside Poll.
func (m *Metrics) TaskPolled(_ context.Context, _ executor.TaskID, status executor.Status, dur time.Duration) {
	m.polls.Add(1)
	if status == executor.Suspended {
		m.suspendedPoll.Add(1)
	}
	m.pollDurSumNs.Add(dur.Nanoseconds())
}

// TaskCompleted decrements live, increments completed, and tracks panics and lifetime.
func (m *Metrics) TaskCompleted(_ context.Context, _ executor.TaskID, lifetime time.Duration, panicked bool) {
	m.liveTasks.Add(-1)
	m.tasksCompleted.Add(1)
	if panicked {
		m.tasksPanicked.Add(1)
	}
	m.lifetimeSumNs.Add(lifetime.Nanoseconds())
}

// Snapshot exposes a copy of current metric values for exporting/inspection.
type Snapshot struct {
	LiveTasks       int64
	TasksSpawned    int64
	BlockingTasks   int64
	TasksCompleted  int64
	TasksPanicked   int64
	LifetimeSumNs   int64
	Polls           int64
	SuspendedPolls  int64
	PollDurSumNs    int64
	RuntimesStarted int64
	RuntimesStopped int64
}

// GetSnapshot returns the current metrics snapshot.
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		LiveTasks:       m.liveTasks.Load(),
		TasksSpawned:    m.tasksSpawned.Load(),
		BlockingTasks:   m.blockingTasks.Load(),
		TasksCompleted:  m.tasksCompleted.Load(),
		TasksPanicked:   m.tasksPanicked.Load(),
		LifetimeSumNs:   m.lifetimeSumNs.Load(),
		Polls:           m.polls.Load(),
		SuspendedPolls:  m.suspendedPoll.Load(),
		PollDurSumNs:    m.pollDurSumNs.Load(),
		RuntimesStarted: m.runtimesStarted.Load(),
		RuntimesStopped: m.runtimesStopped.Load(),
	}
}
