// Package lazy provides a thread-safe, at-most-once deferred initializer for
// process-wide state. The zero value is ready to use, so a Value can live in a
// package-level var without a constructor.
package lazy
