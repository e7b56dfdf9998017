package bundle_test

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentsystems/notary-core/internal/bundle"
	"github.com/agentsystems/notary-core/internal/codec"
	"github.com/agentsystems/notary-core/internal/testsupport"
)

func buildItemOfSize(t *testing.T, dataLen int) []byte {
	t.Helper()
	key, err := testsupport.GenerateKey()
	require.NoError(t, err)
	tags := testsupport.HappyPathTags(
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		"550e8400-e29b-41d4-a716-446655440000", "0",
		"2024-06-01T12:34:56.789+00:00", "0.2.0",
	)
	data := make([]byte, dataLen)
	item, err := testsupport.BuildSigned(key, tags, data)
	require.NoError(t, err)
	return item.Bytes
}

func TestAssembleFraming(t *testing.T) {
	b1 := buildItemOfSize(t, 100)
	b2 := buildItemOfSize(t, 200)

	out, err := bundle.Assemble([][]byte{b1, b2})
	require.NoError(t, err)

	require.Len(t, out, 32+64*2+len(b1)+len(b2))

	assert.Equal(t, uint64(2), codec.ReadUint64LE(out, 0))

	assert.Equal(t, uint64(len(b1)), codec.ReadUint64LE(out, 32))
	sig1 := sha256.Sum256(b1[2:514])
	assert.Equal(t, sig1[:], out[64:96])

	assert.Equal(t, uint64(len(b2)), codec.ReadUint64LE(out, 96))
	sig2 := sha256.Sum256(b2[2:514])
	assert.Equal(t, sig2[:], out[128:160])

	assert.Equal(t, b1, out[160:160+len(b1)])
	assert.Equal(t, b2, out[160+len(b1):])
}

func TestAssembleEmptyBatch(t *testing.T) {
	out, err := bundle.Assemble(nil)
	require.NoError(t, err)
	assert.Len(t, out, 32)
	assert.Equal(t, uint64(0), codec.ReadUint64LE(out, 0))
}

func TestAssembleRejectsShortBlob(t *testing.T) {
	_, err := bundle.Assemble([][]byte{{0x01, 0x02}})
	assert.Error(t, err)
}
