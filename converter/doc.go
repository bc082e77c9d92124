// Package converter transforms DriveBC records into a KML document.
//
// The conversion has two halves:
//
//   - Normalization: per-record geometry extraction, style resolution,
//     title derivation, and detail-body formatting. Missing fields fall
//     back to the literals in the central fallback table.
//   - Assembly: style catalog emission, stable first-seen grouping into
//     folders, and construction of the final kml.Document.
//
// Assembly is a pure function of its inputs plus the injected clock; a
// Converter holds no state between calls and is safe to reuse.
package converter
