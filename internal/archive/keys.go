package archive

import (
	"encoding/binary"

	"github.com/rzbill/tape/pkg/id"
)

// Keyspace helpers for Pebble keys.
//
// Layout (byte-wise, lexicographically sortable):
// - wm/{id16}            (window metadata)
// - we/{id16}/{seq_be8}  (entries)
//
// IDs embed a big-endian ms timestamp, so both ranges iterate oldest-first.

var (
	sep        = byte('/')
	metaPrefix = []byte("wm/")
	entPrefix  = []byte("we/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// KeyWindowMeta builds the metadata key for a window.
func KeyWindowMeta(windowID id.ID) []byte {
	k := make([]byte, 0, len(metaPrefix)+16)
	k = append(k, metaPrefix...)
	k = append(k, windowID[:]...)
	return k
}

// KeyWindowEntry builds the entry key with a big-endian sequence for proper ordering.
func KeyWindowEntry(windowID id.ID, seq uint64) []byte {
	k := make([]byte, 0, len(entPrefix)+16+1+8)
	k = append(k, entPrefix...)
	k = append(k, windowID[:]...)
	k = append(k, sep)
	k = appendBE8(k, seq)
	return k
}

// MetaRange returns the [low, high) bounds covering all window metadata keys.
func MetaRange() (low, high []byte) {
	low = append([]byte(nil), metaPrefix...)
	high = append(append([]byte(nil), metaPrefix...), 0xff)
	return low, high
}

// EntryRange returns the [low, high) bounds covering one window's entries.
func EntryRange(windowID id.ID) (low, high []byte) {
	low = KeyWindowEntry(windowID, 0)
	high = append(KeyWindowEntry(windowID, ^uint64(0)), 0x00)
	return low, high
}

// windowIDFromMetaKey extracts the ID from a metadata key.
func windowIDFromMetaKey(key []byte) (id.ID, bool) {
	if len(key) != len(metaPrefix)+16 {
		return id.Zero, false
	}
	out, err := id.FromBytes(key[len(metaPrefix):])
	return out, err == nil
}

// seqFromEntryKey extracts the sequence number from an entry key.
func seqFromEntryKey(key []byte) (uint64, bool) {
	if len(key) != len(entPrefix)+16+1+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(key)-8:]), true
}
