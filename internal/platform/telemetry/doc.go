// Package telemetry wires OpenTelemetry metrics for the service: an optional
// OTLP/gRPC push exporter installed as the global meter provider, and the
// counters and histograms the assessment service records into.
package telemetry
