package decryption

import (
	//nolint:gosec // MD5 is part of the key derivation scheme, not used for security.
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
)

// trackKeySize is the length of a derived Blowfish key in bytes.
const trackKeySize = 16

// trackKeySalt is the fixed salt mixed into every track key.
const trackKeySalt = "g4el58wc0zvf9na1"

// ErrEmptyTrackID indicates that key derivation was attempted without a track identifier.
var ErrEmptyTrackID = errors.New("track ID cannot be empty")

// DeriveTrackKey derives the per-track Blowfish key from the track identifier.
// The key is built by XOR-ing the two halves of the hex-encoded MD5 digest
// of the identifier with the fixed salt. The derivation is deterministic:
// the same identifier always yields the same key.
func DeriveTrackKey(trackID string) ([]byte, error) {
	if strings.TrimSpace(trackID) == "" {
		return nil, ErrEmptyTrackID
	}

	//nolint:gosec // MD5 is mandated by the key derivation scheme.
	digest := md5.Sum([]byte(trackID))
	hexDigest := hex.EncodeToString(digest[:])

	key := make([]byte, trackKeySize)
	for i := range trackKeySize {
		key[i] = hexDigest[i] ^ hexDigest[i+trackKeySize] ^ trackKeySalt[i]
	}

	return key, nil
}
