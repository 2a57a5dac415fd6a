package executor

import "github.com/NetPo4ki/go-whorl/lazy"

var global lazy.Value[*Runtime]

// InitDefault returns the process-wide runtime, creating it with opts on
// first use. Later calls ignore opts.
func InitDefault(opts ...Option) *Runtime {
	return *global.MustGetOrInit(func() *Runtime { return New(opts...) })
}

// Default returns the process-wide runtime.
func Default() *Runtime { return InitDefault() }

// Spawn enqueues f on the process-wide runtime.
func Spawn(f Future) { Default().Spawn(f) }

// BlockOn enqueues f as blocking work on the process-wide runtime.
func BlockOn(f Future) { Default().BlockOn(f) }

// Wait blocks until every task on the process-wide runtime has completed.
func Wait() { Default().Wait() }
