package deephash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsystems/notary-core/internal/deephash"
	"github.com/agentsystems/notary-core/internal/testsupport"
)

func TestDeepHashDeterministic(t *testing.T) {
	a := deephash.List([]byte("x"), []byte("y"))
	b := deephash.List([]byte("x"), []byte("y"))
	assert.Equal(t, a, b)
}

func TestDeepHashOrderSensitive(t *testing.T) {
	a := deephash.List([]byte("x"), []byte("y"))
	b := deephash.List([]byte("y"), []byte("x"))
	assert.NotEqual(t, a, b)
}

func TestDeepHashBlobLengthSensitive(t *testing.T) {
	a := deephash.Blob([]byte("aa"))
	b := deephash.Blob([]byte("a"))
	assert.NotEqual(t, a, b)
}

func TestVerifyDataItemHappyPath(t *testing.T) {
	key, err := testsupport.GenerateKey()
	require.NoError(t, err)

	hash := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	namespace := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	notarizedAt := "2024-06-01T12:34:56.789+00:00"
	sdkVersion := "0.2.0"
	sessionID := "550e8400-e29b-41d4-a716-446655440000"

	tags := testsupport.HappyPathTags(hash, namespace, sessionID, "0", notarizedAt, sdkVersion)
	body := testsupport.HappyPathBody(hash, namespace, notarizedAt, sdkVersion)

	item, err := testsupport.BuildSigned(key, tags, body)
	require.NoError(t, err)

	view, err := testsupport.Decode(item.Bytes)
	require.NoError(t, err)

	err = deephash.VerifyDataItem(view.Owner, []byte{}, []byte{}, view.TagBytes, view.Data, view.Signature)
	assert.NoError(t, err)
}

func TestVerifyDataItemRejectsBitFlipInSignature(t *testing.T) {
	key, err := testsupport.GenerateKey()
	require.NoError(t, err)

	tags := testsupport.HappyPathTags(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"550e8400-e29b-41d4-a716-446655440000", "0",
		"2024-06-01T12:34:56.789+00:00", "0.2.0",
	)
	body := testsupport.HappyPathBody(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"2024-06-01T12:34:56.789+00:00", "0.2.0",
	)

	item, err := testsupport.BuildSigned(key, tags, body)
	require.NoError(t, err)

	raw := append([]byte(nil), item.Bytes...)
	raw[2] ^= 0x01 // flip one bit inside the signature range [2, 514)

	view, err := testsupport.Decode(raw)
	require.NoError(t, err)

	err = deephash.VerifyDataItem(view.Owner, []byte{}, []byte{}, view.TagBytes, view.Data, view.Signature)
	assert.Error(t, err)
}

func TestVerifyDataItemRejectsBitFlipInData(t *testing.T) {
	key, err := testsupport.GenerateKey()
	require.NoError(t, err)

	tags := testsupport.HappyPathTags(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"550e8400-e29b-41d4-a716-446655440000", "0",
		"2024-06-01T12:34:56.789+00:00", "0.2.0",
	)
	body := testsupport.HappyPathBody(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"2024-06-01T12:34:56.789+00:00", "0.2.0",
	)

	item, err := testsupport.BuildSigned(key, tags, body)
	require.NoError(t, err)

	view, err := testsupport.Decode(item.Bytes)
	require.NoError(t, err)

	tamperedData := append([]byte(nil), view.Data...)
	tamperedData[0] ^= 0x01

	err = deephash.VerifyDataItem(view.Owner, []byte{}, []byte{}, view.TagBytes, tamperedData, view.Signature)
	assert.Error(t, err)
}
