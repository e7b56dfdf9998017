package signer

import (
	"github.com/agentsystems/notary-core/internal/codec"
	"github.com/agentsystems/notary-core/internal/deephash"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// bundleFormatTag and bundleVersionTag are the on-chain tags added to the
// wrapping L1 transaction, not to DataItems.
const (
	bundleFormatTag    = "binary"
	bundleVersionTag   = "2.0.0"
	transactionFormat  = "2"
)

// ArweaveTransaction is the concrete adapter satisfying Capability for a
// native Arweave L1 transaction wrapping a bundle produced by
// internal/bundle.Assemble.
type ArweaveTransaction struct {
	ownerModulus string
	target       string
	anchor       string
	quantity     string
	reward       string
	data         []byte

	id        string
	signature [512]byte
}

// NewArweaveTransaction builds the wrapper transaction around bundleBytes.
// quantity and reward follow Arweave's decimal-string winston conventions
// and are opaque to this adapter.
func NewArweaveTransaction(bundleBytes []byte, anchor, quantity, reward string) *ArweaveTransaction {
	return &ArweaveTransaction{
		anchor:   anchor,
		quantity: quantity,
		reward:   reward,
		data:     bundleBytes,
	}
}

// SetOwner implements Capability.
func (t *ArweaveTransaction) SetOwner(modulusBase64URL string) {
	t.ownerModulus = modulusBase64URL
}

// SignatureData implements Capability, computing the deep-hash over the
// transaction's fields for the KMS to sign.
func (t *ArweaveTransaction) SignatureData() ([48]byte, error) {
	if t.ownerModulus == "" {
		return [48]byte{}, &agerrors.Internal{Reason: "owner not set before computing signature data"}
	}

	ownerBytes, err := codec.Base64URLDecode(t.ownerModulus)
	if err != nil {
		return [48]byte{}, &agerrors.Internal{Reason: "owner is not valid base64url", Cause: err}
	}

	tags := []byte("Bundle-Format=" + bundleFormatTag + ";Bundle-Version=" + bundleVersionTag)

	digest := deephash.List(
		[]byte(transactionFormat),
		ownerBytes,
		[]byte(t.target),
		[]byte(t.quantity),
		t.data,
		[]byte(t.reward),
		[]byte(t.anchor),
		tags,
	)
	return digest, nil
}

// SetSignature implements Capability.
func (t *ArweaveTransaction) SetSignature(id, owner string, signature [512]byte) error {
	if id == "" {
		return &agerrors.Internal{Reason: "empty transaction id"}
	}
	t.id = id
	t.ownerModulus = owner
	t.signature = signature
	return nil
}

// ID returns the transaction id set by SetSignature, or the empty string
// if the transaction has not yet been signed.
func (t *ArweaveTransaction) ID() string { return t.id }
