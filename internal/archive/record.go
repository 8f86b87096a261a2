package archive

import (
	"encoding/binary"
	"hash/crc32"
)

// Entry encoding: varint headerLen | header | text | crc32c(header|text).
// The header is the 8-byte big-endian capture time in ms since Unix epoch.

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// EncodeEntry frames one entry for storage.
func EncodeEntry(atMs int64, text string) []byte {
	var hdr [8]byte
	binary.BigEndian.PutUint64(hdr[:], uint64(atMs))

	out := make([]byte, 0, 10+len(hdr)+len(text)+4)
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(hdr)))
	out = append(out, tmp[:n]...)
	out = append(out, hdr[:]...)
	out = append(out, text...)

	crc := crc32.Update(0, castagnoli, hdr[:])
	crc = crc32.Update(crc, castagnoli, []byte(text))
	var crcb [4]byte
	binary.BigEndian.PutUint32(crcb[:], crc)
	out = append(out, crcb[:]...)
	return out
}

// DecodeEntry reverses EncodeEntry. It returns ok=false on truncated or
// corrupt input.
func DecodeEntry(b []byte) (atMs int64, text string, ok bool) {
	if len(b) < 1+4 {
		return 0, "", false
	}
	hlen, n := binary.Uvarint(b)
	if n <= 0 || hlen < 8 {
		return 0, "", false
	}
	if int(n)+int(hlen)+4 > len(b) {
		return 0, "", false
	}
	header := b[n : n+int(hlen)]
	payload := b[n+int(hlen) : len(b)-4]
	expect := binary.BigEndian.Uint32(b[len(b)-4:])
	crc := crc32.Update(0, castagnoli, header)
	crc = crc32.Update(crc, castagnoli, payload)
	if crc != expect {
		return 0, "", false
	}
	return int64(binary.BigEndian.Uint64(header[:8])), string(payload), true
}

// Meta encoding: openedMs(8 BE) | closedMs(8 BE) | entryCount(8 BE).

// EncodeMeta frames window metadata for storage.
func EncodeMeta(openedMs, closedMs int64, count uint64) []byte {
	out := make([]byte, 24)
	binary.BigEndian.PutUint64(out[0:8], uint64(openedMs))
	binary.BigEndian.PutUint64(out[8:16], uint64(closedMs))
	binary.BigEndian.PutUint64(out[16:24], count)
	return out
}

// DecodeMeta reverses EncodeMeta.
func DecodeMeta(b []byte) (openedMs, closedMs int64, count uint64, ok bool) {
	if len(b) < 24 {
		return 0, 0, 0, false
	}
	openedMs = int64(binary.BigEndian.Uint64(b[0:8]))
	closedMs = int64(binary.BigEndian.Uint64(b[8:16]))
	count = binary.BigEndian.Uint64(b[16:24])
	return openedMs, closedMs, count, true
}
