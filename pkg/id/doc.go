// Package id provides a 128-bit, lexicographically sortable window identifier.
//
// # Format
//
// The ID is 16 bytes big-endian: [8 bytes ms_timestamp][8 bytes sequence].
// Byte-wise comparison preserves chronological order, so archived windows keyed
// by ID iterate oldest-first, and IDs minted within the same millisecond remain
// strictly increasing by sequence.
//
// # Monotonicity
//
// The Generator ensures per-process monotonicity:
//   - If the system clock regresses, it pins to the last seen millisecond and
//     increments the sequence to avoid going backwards.
//   - If the sequence would overflow within a millisecond, it waits for the
//     next millisecond before emitting the next ID.
//
// Usage
//
//	g := id.NewGenerator()
//	windowID := g.Next()
//	s := windowID.String()   // hex string, e.g. for `tape window show --id`
//	back, _ := id.Parse(s)   // round-trip from the CLI
package id
