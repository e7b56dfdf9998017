// Package codec implements the low-level binary primitives shared by the
// DataItem decoder and the deep-hash verifier: base64url, little-endian
// integer I/O, and the Avro zig-zag varint ("long") encoding used for the
// on-wire tag list.
package codec

import (
	"encoding/base64"
	"encoding/binary"

	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// ReadZigZagLong reads one Avro-encoded zig-zag long from buf starting at
// offset. It returns the decoded value and the number of bytes consumed.
// A truncated varint (continuation bit set on the final available byte)
// is a decode failure.
func ReadZigZagLong(buf []byte, offset int) (value int64, consumed int, err error) {
	var raw uint64
	var shift uint
	pos := offset

	for {
		if pos >= len(buf) {
			return 0, 0, &agerrors.DecodeError{Reason: "truncated varint"}
		}
		b := buf[pos]
		pos++

		raw |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 70 {
			return 0, 0, &agerrors.DecodeError{Reason: "varint too long"}
		}
	}

	// zig-zag decode: (n >>> 1) XOR -(n AND 1)
	value = int64(raw>>1) ^ -int64(raw&1)
	return value, pos - offset, nil
}

// Base64URLEncode returns the unpadded base64url encoding of b.
func Base64URLEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Base64URLDecode decodes an unpadded base64url string.
func Base64URLDecode(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// ReadUint16LE reads a little-endian uint16 at offset. The caller must
// ensure buf has at least offset+2 bytes.
func ReadUint16LE(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

// ReadUint64LE reads a little-endian uint64 at offset. The caller must
// ensure buf has at least offset+8 bytes.
func ReadUint64LE(buf []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(buf[offset : offset+8])
}

// PutUint64LE32 writes v as a little-endian uint64 into the low 8 bytes
// of a 32-byte field, zeroing the upper 24 bytes. Used for the bundle
// assembler's fixed-width count and size fields.
func PutUint64LE32(dst []byte, v uint64) {
	for i := range dst[:32] {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint64(dst[:8], v)
}
