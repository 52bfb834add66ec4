package decryption

import (
	//nolint:gosec // MD5 is part of the key derivation scheme, not used for security.
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeriveTrackKey tests the DeriveTrackKey function.
func TestDeriveTrackKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		trackID     string
		expectError bool
	}{
		{
			name:    "numeric track ID",
			trackID: "3135556",
		},
		{
			name:    "another track ID",
			trackID: "916424",
		},
		{
			name:        "empty track ID",
			trackID:     "",
			expectError: true,
		},
		{
			name:        "whitespace track ID",
			trackID:     "   ",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, err := DeriveTrackKey(tt.trackID)

			if tt.expectError {
				require.ErrorIs(t, err, ErrEmptyTrackID)
				assert.Nil(t, key)

				return
			}

			require.NoError(t, err)
			assert.Len(t, key, trackKeySize)

			// Independently recompute the expected key.
			digest := md5.Sum([]byte(tt.trackID)) //nolint:gosec // Scheme-mandated MD5.
			hexDigest := hex.EncodeToString(digest[:])

			expected := make([]byte, trackKeySize)
			for i := range trackKeySize {
				expected[i] = hexDigest[i] ^ hexDigest[i+trackKeySize] ^ trackKeySalt[i]
			}

			assert.Equal(t, expected, key)
		})
	}
}

// TestDeriveTrackKey_Deterministic tests that the same input always yields the same key.
func TestDeriveTrackKey_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := DeriveTrackKey("3135556")
	require.NoError(t, err)

	second, err := DeriveTrackKey("3135556")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestDeriveTrackKey_DistinctTracks tests that different identifiers yield different keys.
func TestDeriveTrackKey_DistinctTracks(t *testing.T) {
	t.Parallel()

	first, err := DeriveTrackKey("3135556")
	require.NoError(t, err)

	second, err := DeriveTrackKey("3135557")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
