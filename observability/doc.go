// Package observability provides logger construction and Prometheus
// metrics for the pipeline.
package observability
