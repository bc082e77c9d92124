// Package pipeline wires fetching, conversion, serialization, and output
// writing into single-shot generation runs.
package pipeline
