package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"

	"github.com/agentsystems/notary-core/internal/codec"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// LocalSigningKey stands in for a network KMS client during local testing.
// A production deployment swaps this for a real KMS
// client behind the same signing contract without touching the bundle
// assembler or the orchestrator.
type LocalSigningKey struct {
	key *rsa.PrivateKey
}

// NewLocalSigningKey generates a fresh RSA-4096 key.
func NewLocalSigningKey() (*LocalSigningKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		return nil, &agerrors.Internal{Reason: "failed to generate RSA-4096 key", Cause: err}
	}
	return &LocalSigningKey{key: key}, nil
}

// OwnerModulusBase64URL returns this key's public modulus, base64url
// encoded, suitable for Capability.SetOwner.
func (k *LocalSigningKey) OwnerModulusBase64URL() string {
	return codec.Base64URLEncode(k.key.PublicKey.N.Bytes())
}

// Sign signs a transaction's SignatureData output and applies the result
// via SetSignature, returning the derived transaction id.
func (k *LocalSigningKey) Sign(tx Capability) (string, error) {
	digest, err := tx.SignatureData()
	if err != nil {
		return "", err
	}

	hashed := sha256.Sum256(digest[:])
	opts := &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}

	sigBytes, err := rsa.SignPSS(rand.Reader, k.key, crypto.SHA256, hashed[:], opts)
	if err != nil {
		return "", &agerrors.Internal{Reason: "RSA-PSS signing failed", Cause: err}
	}

	var signature [512]byte
	copy(signature[512-len(sigBytes):], sigBytes)

	idBytes := sha256.Sum256(signature[:])
	id := codec.Base64URLEncode(idBytes[:])

	owner := k.OwnerModulusBase64URL()
	if err := tx.SetSignature(id, owner, signature); err != nil {
		return "", err
	}
	return id, nil
}
