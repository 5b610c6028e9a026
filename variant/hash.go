package variant

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

func hashUint64(d *xxhash.Digest, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	d.Write(b[:])
}

func hashInt64(d *xxhash.Digest, v int64) {
	hashUint64(d, uint64(v))
}

func hashString(d *xxhash.Digest, s string) {
	hashUint64(d, uint64(len(s)))
	d.WriteString(s)
}

// hashUnordered folds element hashes so that iteration order does not
// matter.
func hashUnordered(d *xxhash.Digest, n int, hashes func(yield func(uint64) bool)) {
	var sum, xor uint64
	for h := range hashes {
		sum += h
		xor ^= h
	}
	hashUint64(d, uint64(n))
	hashUint64(d, sum)
	hashUint64(d, xor)
}
