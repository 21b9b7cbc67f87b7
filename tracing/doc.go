// Package tracing wraps OpenTelemetry so that the kernel and the engine
// facade can record spans for processed events without importing the
// upstream packages directly. Spans are no-ops until Init or
// InitWithExporter installs a provider.
package tracing
