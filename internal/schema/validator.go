package schema

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/agentsystems/notary-core/internal/dataitem"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

// body is the exact five-field JSON shape the DataItem payload must
// decode to.
type body struct {
	Hash        string `json:"hash"`
	Namespace   string `json:"namespace"`
	NotarizedAt string `json:"notarized_at"`
	SDKVersion  string `json:"sdk_version"`
	V           string `json:"v"`
}

// Validate runs the fixed application policy against an already-verified
// DataItemView. Checks run in order; the first failure short-circuits
// with a SchemaViolation naming the violated rule.
func Validate(item *dataitem.DataItemView) error {
	if err := checkEnvelope(item); err != nil {
		return err
	}
	tags, err := checkTags(item.Tags)
	if err != nil {
		return err
	}
	b, err := checkBody(item.Data)
	if err != nil {
		return err
	}
	return checkCrossFields(tags, b)
}

func checkEnvelope(item *dataitem.DataItemView) error {
	if len(item.Raw) > MaxDataItemSize {
		return &agerrors.SizeExceeded{Size: len(item.Raw), Limit: MaxDataItemSize}
	}
	if item.SignatureType != dataitem.SupportedSignatureType {
		return &agerrors.SchemaViolation{Reason: "bad signature type"}
	}
	if item.HasTarget {
		return &agerrors.SchemaViolation{Reason: "target not allowed"}
	}
	if item.HasAnchor {
		return &agerrors.SchemaViolation{Reason: "anchor not allowed"}
	}
	return nil
}

// checkTags validates tag count, uniqueness, and per-name value rules,
// returning the tags indexed by name for the cross-field pass.
func checkTags(tags []dataitem.Tag) (map[string]string, error) {
	if len(tags) != len(requiredTagNames) {
		return nil, &agerrors.SchemaViolation{Reason: "expected exactly 9 tags"}
	}

	byName := make(map[string]string, len(tags))
	for _, t := range tags {
		if _, dup := byName[t.Name]; dup {
			return nil, &agerrors.SchemaViolation{Reason: "duplicate tag name: " + t.Name}
		}
		byName[t.Name] = t.Value
	}

	for _, name := range requiredTagNames {
		value, ok := byName[name]
		if !ok {
			return nil, &agerrors.SchemaViolation{Reason: "missing required tag: " + name}
		}
		if err := checkTagValue(name, value); err != nil {
			return nil, err
		}
	}

	if byName[TagNotarizedDateUTC] != byName[TagNotarizedAt][:10] {
		return nil, &agerrors.SchemaViolation{Reason: "Notarized-Date-UTC does not match first 10 chars of Notarized-At"}
	}

	return byName, nil
}

func checkTagValue(name, value string) error {
	switch name {
	case TagAppName:
		if value != expectedAppName {
			return &agerrors.SchemaViolation{Reason: "App-Name must be " + expectedAppName}
		}
	case TagContentType:
		if value != expectedContentType {
			return &agerrors.SchemaViolation{Reason: "Content-Type must be " + expectedContentType}
		}
	case TagHash:
		if !sha256HexPattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "Hash must be 64 lowercase hex chars"}
		}
	case TagNamespace:
		if !sha256HexPattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "Namespace must be 64 lowercase hex chars"}
		}
	case TagSessionID:
		// uuid.Parse also accepts braced, urn-prefixed and undashed forms;
		// the length check keeps only the 8-4-4-4-12 shape.
		if _, err := uuid.Parse(value); err != nil || len(value) != 36 {
			return &agerrors.SchemaViolation{Reason: "Session-ID must be a UUID"}
		}
	case TagSequence:
		if !sequencePattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "Sequence must be 0 or a positive integer with no leading zero"}
		}
	case TagNotarizedAt:
		if !isoTimestampPattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "Notarized-At must be ISO-8601"}
		}
	case TagNotarizedDateUTC:
		if !dateOnlyPattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "Notarized-Date-UTC must be YYYY-MM-DD"}
		}
	case TagSDKVersion:
		if !semverPattern.MatchString(value) {
			return &agerrors.SchemaViolation{Reason: "SDK-Version must be strict MAJOR.MINOR.PATCH"}
		}
		if semver.Compare("v"+value, "v"+MinSDKVersion) < 0 {
			return &agerrors.SchemaViolation{Reason: "SDK-Version " + value + " below minimum " + MinSDKVersion}
		}
	}
	return nil
}

func checkBody(data []byte) (*body, error) {
	var b body
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &agerrors.SchemaViolation{Reason: "body is not valid JSON"}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &agerrors.SchemaViolation{Reason: "body is not a JSON object"}
	}
	if len(raw) != 5 {
		return nil, &agerrors.SchemaViolation{Reason: "body must have exactly 5 fields"}
	}

	if !sha256HexPattern.MatchString(b.Hash) {
		return nil, &agerrors.SchemaViolation{Reason: "body.hash must be 64 lowercase hex chars"}
	}
	if !sha256HexPattern.MatchString(b.Namespace) {
		return nil, &agerrors.SchemaViolation{Reason: "body.namespace must be 64 lowercase hex chars"}
	}
	if !isoTimestampPattern.MatchString(b.NotarizedAt) {
		return nil, &agerrors.SchemaViolation{Reason: "body.notarized_at must be ISO-8601"}
	}
	if !semverPattern.MatchString(b.SDKVersion) {
		return nil, &agerrors.SchemaViolation{Reason: "body.sdk_version must be strict semver"}
	}
	if b.V != "1" {
		return nil, &agerrors.SchemaViolation{Reason: `body.v must be the literal "1"`}
	}

	return &b, nil
}

func checkCrossFields(tags map[string]string, b *body) error {
	if tags[TagHash] != b.Hash {
		return &agerrors.SchemaViolation{Reason: "Hash tag does not match body hash"}
	}
	if tags[TagNamespace] != b.Namespace {
		return &agerrors.SchemaViolation{Reason: "Namespace tag does not match body namespace"}
	}
	if tags[TagNotarizedAt] != b.NotarizedAt {
		return &agerrors.SchemaViolation{Reason: "Notarized-At tag does not match body notarized_at"}
	}
	if tags[TagSDKVersion] != b.SDKVersion {
		return &agerrors.SchemaViolation{Reason: "SDK-Version tag does not match body sdk_version"}
	}
	return nil
}
