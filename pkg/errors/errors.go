// Package errors defines the structured error taxonomy returned by the
// notary core. Each kind is a distinct type so callers can errors.As to
// the specific kind rather than string-matching messages.
package errors

import "fmt"

// DecodeError reports a malformed DataItem: buffer underflow, an invalid
// present-flag value, invalid Avro tag structure, invalid UTF-8, or a
// tag-count mismatch between the header and the decoded tag list.
type DecodeError struct {
	Reason string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// UnsupportedSignatureType reports a DataItem whose signature type field
// is not the only variant this core supports.
type UnsupportedSignatureType struct {
	Got uint16
}

func (e *UnsupportedSignatureType) Error() string {
	return fmt.Sprintf("unsupported signature type: %d", e.Got)
}

// SignatureInvalid reports that the RSA-PSS verification of the deep-hash
// digest against the owner modulus failed.
type SignatureInvalid struct {
	Cause error
}

func (e *SignatureInvalid) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("signature invalid: %v", e.Cause)
	}
	return "signature invalid"
}

func (e *SignatureInvalid) Unwrap() error { return e.Cause }

// SizeExceeded reports a DataItem larger than the configured ceiling.
type SizeExceeded struct {
	Size, Limit int
}

func (e *SizeExceeded) Error() string {
	return fmt.Sprintf("size %d exceeds limit %d", e.Size, e.Limit)
}

// SchemaViolation reports the specific application-level rule a DataItem
// failed, per the fixed tag/body policy.
type SchemaViolation struct {
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Reason)
}

// Internal reports an unexpected invariant break inside the core. It is
// logged with cause context but never echoed verbatim to external callers.
type Internal struct {
	Reason string
	Cause  error
}

func (e *Internal) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("internal error: %s", e.Reason)
}

func (e *Internal) Unwrap() error { return e.Cause }
