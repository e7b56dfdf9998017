package deephash

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"

	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// rsaPublicExponent is the fixed public exponent (65537, "AQAB") used by
// every ANS-104 signature-type-1 owner modulus.
const rsaPublicExponent = 65537

// VerifyDataItem recomputes the deep-hash over the canonical field tuple
// and verifies the RSA-PSS signature against the owner modulus. It never
// mutates or canonicalizes its inputs.
func VerifyDataItem(owner, target, anchor, tagBytes, data, signature []byte) error {
	digest := DataItemMessage(owner, target, anchor, tagBytes, data)
	return VerifySignature(owner, digest[:], signature)
}

// VerifySignature verifies an RSA-PSS-SHA256 signature over digest (the
// 48-byte deep-hash output) using MGF1-SHA256 with salt length equal to
// the hash output length, against the given big-endian RSA modulus.
func VerifySignature(modulus, digest, signature []byte) error {
	pub := &rsa.PublicKey{
		N: new(big.Int).SetBytes(modulus),
		E: rsaPublicExponent,
	}

	hashed := sha256.Sum256(digest)

	opts := &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
		Hash:       crypto.SHA256,
	}

	if err := rsa.VerifyPSS(pub, crypto.SHA256, hashed[:], signature, opts); err != nil {
		return &agerrors.SignatureInvalid{Cause: err}
	}
	return nil
}
