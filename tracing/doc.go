// Package tracing wraps OpenTelemetry so that the scheduler can emit one span
// per run and one per dispatch without importing the SDK directly. Until Init
// is called the global no-op provider is used and spans cost nothing.
package tracing
