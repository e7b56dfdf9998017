// Package deephash implements Arweave's deep-hash algorithm and the
// RSA-PSS signature verification that authenticates a DataItem against
// its embedded owner modulus.
//
// Deep-hash is a recursive digest over a tree whose leaves are byte
// strings and whose interior nodes are ordered lists, in the spirit of
// a personalized Merkle digest: every node folds a labeled seed together
// with its children before propagating upward.
package deephash

import (
	"crypto/sha512"
	"strconv"
)

// blobLeaf computes H(H("blob" || len_ascii) || H(bytes)) where H is
// SHA-384, matching a labeled leaf digest.
func blobLeaf(data []byte) [48]byte {
	tag := sha512.Sum384([]byte("blob" + strconv.Itoa(len(data))))
	body := sha512.Sum384(data)

	combined := make([]byte, 0, 96)
	combined = append(combined, tag[:]...)
	combined = append(combined, body[:]...)
	return sha512.Sum384(combined)
}

// listNode folds an ordered list of already-hashed children into one
// digest: acc = H("list" || N_ascii); for each child, acc = H(acc || child).
func listNode(children [][48]byte) [48]byte {
	acc := sha512.Sum384([]byte("list" + strconv.Itoa(len(children))))

	for _, child := range children {
		combined := make([]byte, 0, 96)
		combined = append(combined, acc[:]...)
		combined = append(combined, child[:]...)
		acc = sha512.Sum384(combined)
	}
	return acc
}

// Blob computes the deep-hash of a single byte-string leaf.
func Blob(data []byte) [48]byte {
	return blobLeaf(data)
}

// List computes the deep-hash of an ordered list of byte-string children,
// each hashed as a blob leaf before folding.
func List(children ...[]byte) [48]byte {
	hashed := make([][48]byte, len(children))
	for i, c := range children {
		hashed[i] = blobLeaf(c)
	}
	return listNode(hashed)
}

// DataItemMessage computes the deep-hash of the canonical ANS-104 v1
// signed-message tuple:
//
//	[ "dataitem", "1", "1", owner, target_or_empty, anchor_or_empty, tag_bytes, data ]
//
// target and anchor must be passed as empty slices when the corresponding
// presence flag was 0, and as the exact 32-byte value otherwise. tagBytes
// must be the raw on-wire Avro tag region, not a re-encoding.
func DataItemMessage(owner, target, anchor, tagBytes, data []byte) [48]byte {
	return List(
		[]byte("dataitem"),
		[]byte("1"),
		[]byte("1"),
		owner,
		target,
		anchor,
		tagBytes,
		data,
	)
}
