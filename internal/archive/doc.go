// Package archive persists closed tape windows in Pebble.
//
// # Overview
//
// The tape core is purely in-memory; the archive sits behind the slot's
// CloseHook seam and captures each window's final snapshot as it closes.
// Window IDs are time-prefixed and big-endian, so the keyspace iterates
// oldest-first:
//   - wm/{id16}            (window metadata: openedMs, closedMs, entry count)
//   - we/{id16}/{seq_be8}  (entries)
//
// Entries are stored as: varint headerLen | header | text | crc32c(header|text),
// where the header is the 8-byte big-endian capture time in ms.
//
// API surface (internal)
//
//	a := archive.Open(db, logger)
//	slot := tape.NewSlot(tape.WithCloseHook(a))
//
//	// Inspection
//	metas, _ := a.List(archive.ListOptions{Reverse: true, Limit: 20})
//	w, _ := a.Read(metas[0].ID, archive.ReadOptions{})
//
//	// Retention
//	n, _ := a.PurgeOlderThan(ctx, cutoff, 1024, 0)
//
// Reads accept an optional CEL filter over entry attributes (seq, ts_ms,
// size, text, json, now_ms); see NewFilter.
package archive
