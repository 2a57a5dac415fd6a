// Package futures holds small computations that run on the executor: a
// clock-driven Sleep that relies on eager re-polling, a Timer that wakes its
// task from a timer goroutine, and combinators to chain steps.
package futures
