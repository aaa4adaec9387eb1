// Package digest computes the whole-file CRC-32 checksum shown next to
// a loaded file.  It identifies raw bytes, not tree structure; two
// encodings of the same document digest differently.
package digest

import (
	"fmt"
	"hash/crc32"
)

// Digest is a standard reflected CRC-32 (polynomial 0xEDB88320,
// initial value and final xor 0xFFFFFFFF), bit-compatible with common
// CRC-32 implementations: Sum([]byte("123456789")) == 0xCBF43926 and
// the empty input digests to 0.
type Digest uint32

// Sum digests data in one pass.
func Sum(data []byte) Digest {
	return Digest(crc32.ChecksumIEEE(data))
}

func (d Digest) String() string {
	return fmt.Sprintf("CRC32: %08x", uint32(d))
}

// Hex returns the bare 8-digit hex form.
func (d Digest) Hex() string {
	return fmt.Sprintf("%08x", uint32(d))
}
