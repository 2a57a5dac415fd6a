package prom

import (
	"context"
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-whorl/executor"
)

// ExporterOptions controls collector configuration.
type ExporterOptions struct {
	PollDurationBuckets []float64
}

// Exporter is an executor observer backed by Prometheus collectors.
// Every series carries a "runtime" label holding the runtime ID.
type Exporter struct {
	tasksSpawned   *prom.CounterVec
	tasksCompleted *prom.CounterVec
	polls          *prom.CounterVec
	pollDuration   *prom.HistogramVec
	liveTasks      *prom.GaugeVec
	runtimes       prom.Gauge
}

var _ executor.Observer = (*Exporter)(nil)

// NewExporter creates and registers the collectors. Collectors already
// registered under the same names are reused.
func NewExporter(namespace string, reg prom.Registerer, opts ExporterOptions) (*Exporter, error) {
	if namespace == "" {
		namespace = "executor"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.PollDurationBuckets
	if len(buckets) == 0 {
		buckets = prom.ExponentialBuckets(1e-6, 4, 10)
	}

	spawned := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_spawned_total",
		Help:      "Total number of tasks created.",
	}, []string{"runtime", "kind"})
	completed := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_completed_total",
		Help:      "Total number of tasks released by the worker.",
	}, []string{"runtime", "outcome"})
	polls := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Total number of polls by result.",
	}, []string{"runtime", "status"})
	pollDuration := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Time spent inside a single poll.",
		Buckets:   buckets,
	}, []string{"runtime"})
	live := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "live_tasks",
		Help:      "Tasks created and not yet completed.",
	}, []string{"runtime"})
	runtimes := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "runtimes_running",
		Help:      "Runtimes whose worker is running.",
	})

	var err error
	if spawned, err = registerCollector(reg, spawned); err != nil {
		return nil, err
	}
	if completed, err = registerCollector(reg, completed); err != nil {
		return nil, err
	}
	if polls, err = registerCollector(reg, polls); err != nil {
		return nil, err
	}
	if pollDuration, err = registerCollector(reg, pollDuration); err != nil {
		return nil, err
	}
	if live, err = registerCollector(reg, live); err != nil {
		return nil, err
	}
	if runtimes, err = registerCollector(reg, runtimes); err != nil {
		return nil, err
	}

	return &Exporter{
		tasksSpawned:   spawned,
		tasksCompleted: completed,
		polls:          polls,
		pollDuration:   pollDuration,
		liveTasks:      live,
		runtimes:       runtimes,
	}, nil
}

func (e *Exporter) RuntimeStarted(_ context.Context, _ string) {
	e.runtimes.Inc()
}

func (e *Exporter) RuntimeStopped(_ context.Context, _ string) {
	e.runtimes.Dec()
}

func (e *Exporter) TaskSpawned(ctx context.Context, _ executor.TaskID, blocking bool) {
	rt := runtimeLabel(ctx)
	kind := "spawn"
	if blocking {
		kind = "block_on"
	}
	e.tasksSpawned.WithLabelValues(rt, kind).Inc()
	e.liveTasks.WithLabelValues(rt).Inc()
}

func (e *Exporter) TaskPolled(ctx context.Context, _ executor.TaskID, status executor.Status, dur time.Duration) {
	rt := runtimeLabel(ctx)
	e.polls.WithLabelValues(rt, status.String()).Inc()
	e.pollDuration.WithLabelValues(rt).Observe(dur.Seconds())
}

func (e *Exporter) TaskCompleted(ctx context.Context, _ executor.TaskID, _ time.Duration, panicked bool) {
	rt := runtimeLabel(ctx)
	outcome := "ready"
	if panicked {
		outcome = "panicked"
	}
	e.tasksCompleted.WithLabelValues(rt, outcome).Inc()
	e.liveTasks.WithLabelValues(rt).Dec()
}

func runtimeLabel(ctx context.Context) string {
	if id, ok := executor.RuntimeIDFrom(ctx); ok && id != "" {
		return id
	}
	return "unknown"
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegistered prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		existing, ok := alreadyRegistered.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("prom: collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
