package otel

import (
	"context"
	"time"

	"github.com/NetPo4ki/go-whorl/executor"
)

// Nop is a no-op implementation of the executor.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

var _ executor.Observer = (*Nop)(nil)

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) RuntimeStarted(context.Context, string)                                      {}
func (*Nop) RuntimeStopped(context.Context, string)                                      {}
func (*Nop) TaskSpawned(context.Context, executor.TaskID, bool)                          {}
func (*Nop) TaskPolled(context.Context, executor.TaskID, executor.Status, time.Duration) {}
func (*Nop) TaskCompleted(context.Context, executor.TaskID, time.Duration, bool)         {}
