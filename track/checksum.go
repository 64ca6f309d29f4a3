package track

import (
	"encoding/binary"
	"math"

	"blainsmith.com/go/seahash"
)

// Checksum returns an order-sensitive 64-bit digest of the track.  Two
// tracks have equal checksums when they hold the same records in the same
// order, with bit-identical scores.
func (t *Track) Checksum() uint64 {
	h := seahash.New()
	var buf [24]byte
	for _, r := range t.records {
		h.Write([]byte(r.Seqname))
		binary.LittleEndian.PutUint64(buf[0:8], r.Start)
		binary.LittleEndian.PutUint64(buf[8:16], r.End)
		binary.LittleEndian.PutUint64(buf[16:24], math.Float64bits(r.Score))
		h.Write(buf[:])
	}
	return h.Sum64()
}
