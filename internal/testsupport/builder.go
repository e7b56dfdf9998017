// Package testsupport builds signed DataItem blobs for use across the
// core's test suites, standing in for the client-side DataItem generation
// this module deliberately does not implement (see spec Non-goals).
package testsupport

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"

	"github.com/agentsystems/notary-core/internal/dataitem"
	"github.com/agentsystems/notary-core/internal/deephash"
)

// Tag is a name/value pair used to build the Avro tag region.
type Tag struct {
	Name, Value string
}

// HappyPathTags returns the canonical scenario-1 tag set for the given
// hash, namespace, sessionID and sdkVersion. notarizedAt must be a full
// ISO-8601 timestamp; the date-only tag is derived from its first 10 chars.
func HappyPathTags(hash, namespace, sessionID, sequence, notarizedAt, sdkVersion string) []Tag {
	return []Tag{
		{"App-Name", "agentsystems-notary"},
		{"Content-Type", "application/json"},
		{"Hash", hash},
		{"Namespace", namespace},
		{"Session-ID", sessionID},
		{"Sequence", sequence},
		{"Notarized-At", notarizedAt},
		{"Notarized-Date-UTC", notarizedAt[:10]},
		{"SDK-Version", sdkVersion},
	}
}

// HappyPathBody returns the canonical scenario-1 body JSON matching tags
// built by HappyPathTags with the same field values.
func HappyPathBody(hash, namespace, notarizedAt, sdkVersion string) []byte {
	return []byte(`{"v":"1","hash":"` + hash + `","namespace":"` + namespace +
		`","notarized_at":"` + notarizedAt + `","sdk_version":"` + sdkVersion + `"}`)
}

// encodeZigZagLong Avro-encodes n as a zig-zag varint.
func encodeZigZagLong(n int64) []byte {
	zz := uint64((n << 1) ^ (n >> 63))
	var out []byte
	for {
		b := byte(zz & 0x7f)
		zz >>= 7
		if zz != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func encodeAvroString(s string) []byte {
	out := encodeZigZagLong(int64(len(s)))
	out = append(out, []byte(s)...)
	return out
}

// EncodeTags Avro-encodes tags as a single block followed by the
// terminating zero long, matching the wire structure DataItem tag
// regions use.
func EncodeTags(tags []Tag) []byte {
	var out []byte
	out = append(out, encodeZigZagLong(int64(len(tags)))...)
	for _, t := range tags {
		out = append(out, encodeAvroString(t.Name)...)
		out = append(out, encodeAvroString(t.Value)...)
	}
	out = append(out, encodeZigZagLong(0)...)
	return out
}

// Item holds a freshly built and signed DataItem plus the key that signed
// it, so tests can tamper with specific byte ranges.
type Item struct {
	Bytes []byte
	Key   *rsa.PrivateKey
}

// BuildSigned constructs and signs a signature-type-1 DataItem with the
// given tags and body data, no target, no anchor.
func BuildSigned(key *rsa.PrivateKey, tags []Tag, data []byte) (*Item, error) {
	tagBytes := EncodeTags(tags)
	owner := key.PublicKey.N.Bytes()
	// pad owner to 512 bytes big-endian
	ownerPadded := make([]byte, 512)
	copy(ownerPadded[512-len(owner):], owner)

	digest := deephash.DataItemMessage(ownerPadded, []byte{}, []byte{}, tagBytes, data)

	hashed := sha256.Sum256(digest[:])
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}
	sigBytes, err := rsa.SignPSS(rand.Reader, key, crypto.SHA256, hashed[:], opts)
	if err != nil {
		return nil, err
	}
	sigPadded := make([]byte, 512)
	copy(sigPadded[512-len(sigBytes):], sigBytes)

	var buf []byte
	buf = append(buf, 1, 0) // signature type = 1, LE u16
	buf = append(buf, sigPadded...)
	buf = append(buf, ownerPadded...)
	buf = append(buf, 0) // no target
	buf = append(buf, 0) // no anchor

	countField := make([]byte, 8)
	binary.LittleEndian.PutUint64(countField, uint64(len(tags)))
	buf = append(buf, countField...)

	lenField := make([]byte, 8)
	binary.LittleEndian.PutUint64(lenField, uint64(len(tagBytes)))
	buf = append(buf, lenField...)

	buf = append(buf, tagBytes...)
	buf = append(buf, data...)

	return &Item{Bytes: buf, Key: key}, nil
}

// GenerateKey generates a fresh RSA-4096 key for tests.
func GenerateKey() (*rsa.PrivateKey, error) {
	return rsa.GenerateKey(rand.Reader, 4096)
}

// Decode is a thin re-export so test files that only import testsupport
// can still decode the items they build.
func Decode(raw []byte) (*dataitem.DataItemView, error) {
	return dataitem.Decode(raw)
}
