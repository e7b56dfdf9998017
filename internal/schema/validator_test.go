package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsystems/notary-core/internal/dataitem"
	"github.com/agentsystems/notary-core/internal/schema"
	"github.com/agentsystems/notary-core/internal/testsupport"
	agerrors "github.com/agentsystems/notary-core/pkg/errors"
)

const (
	testHash        = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testNamespace   = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	testSessionID   = "550e8400-e29b-41d4-a716-446655440000"
	testNotarizedAt = "2024-06-01T12:34:56.789+00:00"
	testSDKVersion  = "0.2.0"
)

func decodeView(t *testing.T, tags []testsupport.Tag, body []byte) *dataitem.DataItemView {
	t.Helper()
	key, err := testsupport.GenerateKey()
	require.NoError(t, err)
	item, err := testsupport.BuildSigned(key, tags, body)
	require.NoError(t, err)
	view, err := testsupport.Decode(item.Bytes)
	require.NoError(t, err)
	return view
}

func TestValidateHappyPath(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, testSDKVersion)
	body := testsupport.HappyPathBody(testHash, testNamespace, testNotarizedAt, testSDKVersion)
	view := decodeView(t, tags, body)

	assert.NoError(t, schema.Validate(view))
}

func TestValidateRejectsBadSDKVersion(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, "0.1.9")
	body := testsupport.HappyPathBody(testHash, testNamespace, testNotarizedAt, "0.1.9")
	view := decodeView(t, tags, body)

	err := schema.Validate(view)
	require.Error(t, err)
	var violation *agerrors.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "SDK-Version")
}

func TestValidateRejectsTagBodyMismatch(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, testSDKVersion)
	tamperedHash := "c" + testHash[1:]
	body := testsupport.HappyPathBody(tamperedHash, testNamespace, testNotarizedAt, testSDKVersion)
	view := decodeView(t, tags, body)

	err := schema.Validate(view)
	require.Error(t, err)
	var violation *agerrors.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "Hash")
}

func TestValidateRejectsTarget(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, testSDKVersion)
	body := testsupport.HappyPathBody(testHash, testNamespace, testNotarizedAt, testSDKVersion)

	key, err := testsupport.GenerateKey()
	require.NoError(t, err)
	item, err := testsupport.BuildSigned(key, tags, body)
	require.NoError(t, err)

	raw := withTarget(item.Bytes)
	view, err := testsupport.Decode(raw)
	require.NoError(t, err)
	assert.True(t, view.HasTarget)

	err = schema.Validate(view)
	require.Error(t, err)
	var violation *agerrors.SchemaViolation
	require.ErrorAs(t, err, &violation)
	assert.Contains(t, violation.Reason, "target")
}

// withTarget rebuilds a no-target DataItem blob with the target-present
// flag set and a 32-byte zero target inserted, for the target-rejection
// scenario. It does not re-sign: schema validation runs independently of
// signature verification in this test.
func withTarget(raw []byte) []byte {
	const headerEnd = 2 + 512 + 512 // signature type + signature + owner
	out := append([]byte(nil), raw[:headerEnd]...)
	out = append(out, 1)                // target-present flag
	out = append(out, make([]byte, 32)...) // zero target
	out = append(out, raw[headerEnd+1:]...) // rest starting at anchor flag
	return out
}

func TestValidateRejectsDuplicateTagName(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, testSDKVersion)
	tags[len(tags)-1] = testsupport.Tag{Name: "App-Name", Value: "agentsystems-notary"}
	body := testsupport.HappyPathBody(testHash, testNamespace, testNotarizedAt, testSDKVersion)
	view := decodeView(t, tags, body)

	err := schema.Validate(view)
	assert.Error(t, err)
}

func TestValidateRejectsExtraBodyField(t *testing.T) {
	tags := testsupport.HappyPathTags(testHash, testNamespace, testSessionID, "0", testNotarizedAt, testSDKVersion)
	body := []byte(`{"v":"1","hash":"` + testHash + `","namespace":"` + testNamespace +
		`","notarized_at":"` + testNotarizedAt + `","sdk_version":"` + testSDKVersion + `","extra":"x"}`)
	view := decodeView(t, tags, body)

	err := schema.Validate(view)
	assert.Error(t, err)
}
