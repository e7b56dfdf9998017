// Package notary is the public entry point for the ANS-104 notarization
// core. It composes decode, deep-hash verification, and schema validation
// into Submit, and separately exposes AssembleBundle for the batching
// stage. Callers (an HTTP handler, a queue batch consumer, or the CLI)
// depend only on this package, not on the internal leaf packages.
//
// Public surface:
//
//	Submit(ctx, raw)         — decode + verify + validate one DataItem
//	AssembleBundle(ctx, ...) — frame an ordered batch of raw blobs
package notary

import (
	"context"
	"log/slog"

	"github.com/agentsystems/notary-core/internal/bundle"
	"github.com/agentsystems/notary-core/internal/dataitem"
	"github.com/agentsystems/notary-core/internal/deephash"
	"github.com/agentsystems/notary-core/internal/schema"
)

// SubmitResult is the outcome of Submit for one DataItem.
type SubmitResult struct {
	Identifier string
	Accepted   bool
	Reason     string
}

// Submit decodes raw as a DataItem, verifies its signature against its
// embedded owner modulus, and validates it against the fixed application
// schema. It never mutates raw; the caller is responsible for forwarding
// the original unmodified bytes downstream on acceptance.
func Submit(ctx context.Context, raw []byte) (*SubmitResult, error) {
	item, err := dataitem.Decode(raw)
	if err != nil {
		slog.WarnContext(ctx, "dataitem decode failed", "error", err)
		return nil, err
	}

	target := item.Target
	if !item.HasTarget {
		target = []byte{}
	}
	anchor := item.Anchor
	if !item.HasAnchor {
		anchor = []byte{}
	}

	if err := deephash.VerifyDataItem(item.Owner, target, anchor, item.TagBytes, item.Data, item.Signature); err != nil {
		slog.WarnContext(ctx, "signature verification failed", "identifier", item.Identifier, "error", err)
		return nil, err
	}

	if err := schema.Validate(item); err != nil {
		slog.InfoContext(ctx, "schema validation rejected item", "identifier", item.Identifier, "error", err)
		return &SubmitResult{Identifier: item.Identifier, Accepted: false, Reason: err.Error()}, nil
	}

	slog.InfoContext(ctx, "item accepted", "identifier", item.Identifier)
	return &SubmitResult{Identifier: item.Identifier, Accepted: true}, nil
}

// AssembleBundle frames an ordered, already-accepted batch of raw
// DataItem blobs into one ANS-104 bundle byte string.
func AssembleBundle(ctx context.Context, blobs [][]byte) ([]byte, error) {
	out, err := bundle.Assemble(blobs)
	if err != nil {
		slog.ErrorContext(ctx, "bundle assembly failed", "error", err, "count", len(blobs))
		return nil, err
	}
	slog.InfoContext(ctx, "bundle assembled", "count", len(blobs), "bytes", len(out))
	return out, nil
}
