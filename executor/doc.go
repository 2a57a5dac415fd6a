// Package executor provides a minimal cooperative task executor.
// A single worker polls suspendable computations (Futures) taken from a
// shared queue; Spawn enqueues fair work, BlockOn enqueues priority work that
// monopolizes the worker until it resolves, and Wait joins on every live task.
package executor
