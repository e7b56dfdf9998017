// Package bundle implements the ANS-104 bundle assembler: given an
// ordered list of already-authenticated, already-validated raw DataItem
// blobs, it produces the binary bundle framing. It does not re-parse
// Avro or re-verify signatures — it trusts the batch.
package bundle

import (
	"bytes"
	"crypto/sha256"

	"github.com/agentsystems/notary-core/internal/codec"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

const (
	fieldWidth        = 32
	signatureStart    = 2
	signatureEnd      = 514
	minDataItemLength = signatureEnd
)

// Assemble produces the bundle byte string for an ordered set of raw
// DataItem blobs. Output length is 32 + 64*len(blobs) + sum(len(b)).
//
// 1. A 32-byte little-endian item count (low 8 bytes hold N).
// 2. For each blob, two 32-byte little-endian fields: its byte length,
//    then the SHA-256 of its signature slice (bytes [2, 514)).
// 3. The blobs themselves, concatenated in order.
func Assemble(blobs [][]byte) ([]byte, error) {
	for _, b := range blobs {
		if len(b) < minDataItemLength {
			return nil, &agerrors.Internal{Reason: "blob too short to contain a signature slice"}
		}
	}

	var out bytes.Buffer

	count := make([]byte, fieldWidth)
	codec.PutUint64LE32(count, uint64(len(blobs)))
	out.Write(count)

	for _, b := range blobs {
		sizeField := make([]byte, fieldWidth)
		codec.PutUint64LE32(sizeField, uint64(len(b)))
		out.Write(sizeField)

		sigHash := sha256.Sum256(b[signatureStart:signatureEnd])
		out.Write(sigHash[:])
	}

	for _, b := range blobs {
		out.Write(b)
	}

	return out.Bytes(), nil
}
