// Package signer defines the capability interface the bundle assembler's
// caller uses to obtain a KMS-signed Arweave L1 wrapper transaction, and
// a concrete adapter implementing it.
//
// The KMS itself is an external collaborator: this package only adapts
// its three-operation contract onto a concrete transaction struct, the
// same shape the deep-hash + signature verifier expects of an inbound
// DataItem, but for the outbound wrapper transaction the assembler's
// caller produces after bundling.
package signer

// Capability is the interface an external KMS-backed signer must satisfy.
type Capability interface {
	// SetOwner records the signer's RSA modulus, base64url-encoded, on
	// the transaction being built.
	SetOwner(modulusBase64URL string)

	// SignatureData returns the 48-byte deep-hash digest over the
	// transaction's fields, ready to be handed to the KMS for signing.
	SignatureData() ([48]byte, error)

	// SetSignature records the KMS-produced signature (and the resulting
	// transaction id) back onto the transaction.
	SetSignature(id, owner string, signature [512]byte) error
}
