// Package engine ranks candidate charging facilities for a vehicle and a user
// intent. It is a pure computation layer: no I/O, no shared state, safe for
// concurrent callers. Facility state arrives as caller-supplied snapshots and
// is never mutated.
package engine
