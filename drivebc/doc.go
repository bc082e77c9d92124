// Package drivebc handles fetching and accessing DriveBC open-data records.
//
// The DriveBC API returns JSON arrays of loosely-typed objects with no
// enforced schema; any field may be absent or null. Record wraps one such
// object and provides typed accessors with explicit fallbacks so callers
// never touch the raw map directly.
//
// The main types are Record (field access) and Client (HTTP fetch).
package drivebc
