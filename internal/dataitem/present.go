package dataitem

import (
	"strings"

	"github.com/agentsystems/notary-core/internal/codec"
)

// TargetBase64URL returns the target field as base64url, or the empty
// string if the DataItem has no target.
func (v *DataItemView) TargetBase64URL() string {
	if !v.HasTarget {
		return ""
	}
	return codec.Base64URLEncode(v.Target)
}

// AnchorText returns the anchor field as UTF-8 text with trailing NUL
// bytes trimmed, or the empty string if the DataItem has no anchor.
func (v *DataItemView) AnchorText() string {
	if !v.HasAnchor {
		return ""
	}
	return strings.TrimRight(string(v.Anchor), "\x00")
}
