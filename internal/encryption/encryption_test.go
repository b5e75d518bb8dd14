package encryption

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{
			name: "nil key is valid",
			key:  nil,
		},
		{
			name: "32 byte key is valid",
			key:  testKey(0xAB),
		},
		{
			name:    "short key rejected",
			key:     bytes.Repeat([]byte{0x01}, 16),
			wantErr: true,
		},
		{
			name:    "long key rejected",
			key:     bytes.Repeat([]byte{0x01}, 33),
			wantErr: true,
		},
		{
			name:    "empty non-nil key rejected",
			key:     []byte{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidEncryptionKey)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHeaders(t *testing.T) {
	sourceKey := testKey(0x11)
	destKey := testKey(0x22)

	t.Run("both keys produce six headers", func(t *testing.T) {
		headers := Headers(sourceKey, destKey)
		require.Len(t, headers, 6)

		assert.Equal(t, "AES256", headers["x-goog-copy-source-encryption-algorithm"])
		assert.Equal(t, "AES256", headers["x-goog-encryption-algorithm"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(sourceKey), headers["x-goog-copy-source-encryption-key"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(destKey), headers["x-goog-encryption-key"])

		sourceSum := sha256.Sum256(sourceKey)
		destSum := sha256.Sum256(destKey)
		assert.Equal(t, base64.StdEncoding.EncodeToString(sourceSum[:]), headers["x-goog-copy-source-encryption-key-sha256"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(destSum[:]), headers["x-goog-encryption-key-sha256"])
	})

	t.Run("source key only", func(t *testing.T) {
		headers := Headers(sourceKey, nil)
		require.Len(t, headers, 3)
		assert.Contains(t, headers, "x-goog-copy-source-encryption-algorithm")
		assert.Contains(t, headers, "x-goog-copy-source-encryption-key")
		assert.Contains(t, headers, "x-goog-copy-source-encryption-key-sha256")
		assert.NotContains(t, headers, "x-goog-encryption-key")
	})

	t.Run("dest key only", func(t *testing.T) {
		headers := Headers(nil, destKey)
		require.Len(t, headers, 3)
		assert.Contains(t, headers, "x-goog-encryption-algorithm")
		assert.Contains(t, headers, "x-goog-encryption-key")
		assert.Contains(t, headers, "x-goog-encryption-key-sha256")
		assert.NotContains(t, headers, "x-goog-copy-source-encryption-key")
	})

	t.Run("no keys yield nil map", func(t *testing.T) {
		assert.Nil(t, Headers(nil, nil))
	})

	t.Run("base64 values keep padding", func(t *testing.T) {
		headers := Headers(nil, destKey)
		// 32 raw bytes encode to 44 characters ending in "=".
		assert.Len(t, headers["x-goog-encryption-key"], 44)
		assert.Equal(t, byte('='), headers["x-goog-encryption-key"][43])
	})
}

func TestDestinationHeaders(t *testing.T) {
	key := testKey(0x33)

	headers := DestinationHeaders(key)
	require.Len(t, headers, 3)
	assert.Equal(t, "AES256", headers["x-goog-encryption-algorithm"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(key), headers["x-goog-encryption-key"])

	assert.Nil(t, DestinationHeaders(nil))
}

func TestSourceHeaders(t *testing.T) {
	key := testKey(0x44)

	headers := SourceHeaders(key)
	require.Len(t, headers, 3)
	assert.Equal(t, "AES256", headers["x-goog-copy-source-encryption-algorithm"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(key), headers["x-goog-copy-source-encryption-key"])

	assert.Nil(t, SourceHeaders(nil))
}

func TestHeadersSameKeyBothSides(t *testing.T) {
	key := testKey(0x55)

	headers := Headers(key, key)
	require.Len(t, headers, 6)
	assert.Equal(t, headers["x-goog-encryption-key"], headers["x-goog-copy-source-encryption-key"])
	assert.Equal(t, headers["x-goog-encryption-key-sha256"], headers["x-goog-copy-source-encryption-key-sha256"])
}
