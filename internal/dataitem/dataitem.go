// Package dataitem implements the ANS-104 DataItem binary decoder.
//
// A DataItem is a fixed-layout binary envelope: signature type, signature,
// owner modulus, optional target/anchor, an Avro-encoded tag list, and a
// raw data payload. Decode parses one blob into a DataItemView without
// re-encoding or copying the tag region, so the deep-hash verifier can
// operate on the exact on-wire bytes.
package dataitem

import (
	"unicode/utf8"

	"github.com/agentsystems/notary-core/internal/codec"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// SupportedSignatureType is the only signature type this core accepts.
const SupportedSignatureType = 1

const (
	offsetSignatureType = 0
	sizeSignatureType   = 2
	sizeSignature       = 512
	sizeModulus         = 512
	sizePresenceFlag    = 1
	sizeTargetOrAnchor  = 32
	sizeCount           = 8
	sizeTagBytesLen     = 8
)

// Tag is a single ANS-104 tag: a UTF-8 (name, value) pair. Name comparison
// is case-sensitive.
type Tag struct {
	Name  string
	Value string
}

// DataItemView is a parsed view over a DataItem blob. Every byte slice
// field it exposes (other than derived values) aliases the backing Raw
// buffer; DataItemView must not outlive it.
type DataItemView struct {
	Raw []byte

	SignatureType uint16
	Signature     []byte // 512 bytes, aliases Raw
	Owner         []byte // 512 bytes, aliases Raw

	HasTarget bool
	Target    []byte // 32 bytes if HasTarget, else nil

	HasAnchor bool
	Anchor    []byte // 32 bytes if HasAnchor, else nil

	Tags []Tag

	// TagBytes is the raw on-wire Avro tag region, required unmodified as
	// input to the deep-hash algorithm.
	TagBytes []byte

	Data []byte

	// Identifier is base64url(SHA-256(Signature)).
	Identifier string
}

// Decode parses raw as a signature-type-1 DataItem.
func Decode(raw []byte) (*DataItemView, error) {
	if len(raw) < offsetSignatureType+sizeSignatureType {
		return nil, &agerrors.DecodeError{Reason: "buffer shorter than signature type field"}
	}

	sigType := codec.ReadUint16LE(raw, offsetSignatureType)
	if sigType != SupportedSignatureType {
		return nil, &agerrors.UnsupportedSignatureType{Got: sigType}
	}

	offset := offsetSignatureType + sizeSignatureType

	signature, offset, err := readFixed(raw, offset, sizeSignature, "signature")
	if err != nil {
		return nil, err
	}

	owner, offset, err := readFixed(raw, offset, sizeModulus, "owner modulus")
	if err != nil {
		return nil, err
	}

	hasTarget, target, offset, err := readOptionalField(raw, offset, "target")
	if err != nil {
		return nil, err
	}

	hasAnchor, anchor, offset, err := readOptionalField(raw, offset, "anchor")
	if err != nil {
		return nil, err
	}

	if offset+sizeCount+sizeTagBytesLen > len(raw) {
		return nil, &agerrors.DecodeError{Reason: "buffer shorter than tag header"}
	}
	tagCount := codec.ReadUint64LE(raw, offset)
	offset += sizeCount
	tagBytesLen := codec.ReadUint64LE(raw, offset)
	offset += sizeTagBytesLen

	if tagBytesLen > uint64(len(raw)-offset) {
		return nil, &agerrors.DecodeError{Reason: "tag bytes length exceeds buffer"}
	}
	tagBytes := raw[offset : offset+int(tagBytesLen)]
	offset += int(tagBytesLen)

	tags, err := decodeAvroTags(tagBytes)
	if err != nil {
		return nil, err
	}
	if uint64(len(tags)) != tagCount {
		return nil, &agerrors.DecodeError{Reason: "decoded tag count does not match header-declared count"}
	}

	data := raw[offset:]

	view := &DataItemView{
		Raw:           raw,
		SignatureType: sigType,
		Signature:     signature,
		Owner:         owner,
		HasTarget:     hasTarget,
		Target:        target,
		HasAnchor:     hasAnchor,
		Anchor:        anchor,
		Tags:          tags,
		TagBytes:      tagBytes,
		Data:          data,
		Identifier:    codec.Base64URLEncode(sha256Sum(signature)),
	}
	return view, nil
}

func readFixed(raw []byte, offset, size int, field string) (slice []byte, next int, err error) {
	if offset+size > len(raw) {
		return nil, 0, &agerrors.DecodeError{Reason: "buffer shorter than " + field + " field"}
	}
	return raw[offset : offset+size], offset + size, nil
}

func readOptionalField(raw []byte, offset int, field string) (present bool, value []byte, next int, err error) {
	if offset+sizePresenceFlag > len(raw) {
		return false, nil, 0, &agerrors.DecodeError{Reason: "buffer shorter than " + field + " presence flag"}
	}
	flag := raw[offset]
	offset += sizePresenceFlag

	switch flag {
	case 0:
		return false, nil, offset, nil
	case 1:
		if offset+sizeTargetOrAnchor > len(raw) {
			return false, nil, 0, &agerrors.DecodeError{Reason: "buffer shorter than " + field + " value"}
		}
		return true, raw[offset : offset+sizeTargetOrAnchor], offset + sizeTargetOrAnchor, nil
	default:
		return false, nil, 0, &agerrors.DecodeError{Reason: field + " presence flag must be 0 or 1"}
	}
}

// decodeAvroTags decodes the Avro tag-list region: zero or more blocks,
// each a zig-zag long b; b == 0 ends the list; b < 0 means the next long
// is a byte-size to skip (block-size hint, discarded); otherwise |b|
// (name, value) UTF-8 pairs follow, each encoded as (len, bytes, len, bytes).
func decodeAvroTags(buf []byte) ([]Tag, error) {
	var tags []Tag
	offset := 0

	for {
		b, n, err := codec.ReadZigZagLong(buf, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		if b == 0 {
			break
		}

		count := b
		if b < 0 {
			// next long is the block byte-size in bytes; read and discard
			_, n, err := codec.ReadZigZagLong(buf, offset)
			if err != nil {
				return nil, err
			}
			offset += n
			count = -b
		}

		for i := int64(0); i < count; i++ {
			name, next, err := readAvroString(buf, offset)
			if err != nil {
				return nil, err
			}
			offset = next

			value, next, err := readAvroString(buf, offset)
			if err != nil {
				return nil, err
			}
			offset = next

			tags = append(tags, Tag{Name: name, Value: value})
		}
	}

	return tags, nil
}

func readAvroString(buf []byte, offset int) (string, int, error) {
	length, n, err := codec.ReadZigZagLong(buf, offset)
	if err != nil {
		return "", 0, err
	}
	offset += n

	if length < 0 || int64(offset)+length > int64(len(buf)) {
		return "", 0, &agerrors.DecodeError{Reason: "tag string length exceeds tag bytes region"}
	}
	raw := buf[offset : offset+int(length)]
	if !utf8.Valid(raw) {
		return "", 0, &agerrors.DecodeError{Reason: "invalid UTF-8 in tag name or value"}
	}
	return string(raw), offset + int(length), nil
}
