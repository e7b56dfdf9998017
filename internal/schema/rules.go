// Package schema implements the application-level validator: the exact
// tag/body contract a DataItem must satisfy once its signature has been
// authenticated, expressed as a declarative table of (name, rule) pairs
// rather than ad-hoc branches.
package schema

import "regexp"

// MaxDataItemSize is the total DataItem size ceiling in bytes.
const MaxDataItemSize = 12288

// MinSDKVersion is the semver floor SDK-Version must satisfy.
const MinSDKVersion = "0.2.0"

const (
	TagAppName           = "App-Name"
	TagContentType       = "Content-Type"
	TagHash              = "Hash"
	TagNamespace         = "Namespace"
	TagSessionID         = "Session-ID"
	TagSequence          = "Sequence"
	TagNotarizedAt       = "Notarized-At"
	TagNotarizedDateUTC  = "Notarized-Date-UTC"
	TagSDKVersion        = "SDK-Version"

	expectedAppName     = "agentsystems-notary"
	expectedContentType = "application/json"
)

var (
	sha256HexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
	sequencePattern  = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
	semverPattern    = regexp.MustCompile(`^[0-9]+\.[0-9]+\.[0-9]+$`)
	dateOnlyPattern  = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	isoTimestampPattern = regexp.MustCompile(
		`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]{3})?(Z|[+-][0-9]{2}:[0-9]{2})$`,
	)
)

// requiredTagNames is the exact, ordered set of tag names a valid DataItem
// must carry, exactly once each.
var requiredTagNames = []string{
	TagAppName,
	TagContentType,
	TagHash,
	TagNamespace,
	TagSessionID,
	TagSequence,
	TagNotarizedAt,
	TagNotarizedDateUTC,
	TagSDKVersion,
}
