// Package otel is the placeholder for an OpenTelemetry observer plugin for the
// executor. It would emit span events for task spawn, poll and completion.
package otel
