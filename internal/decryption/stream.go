package decryption

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blowfish"
)

const (
	// streamBlockSize is the size of a stream block; the cipher is applied per block.
	streamBlockSize = 2048

	// encryptedBlockStride means every N-th block (starting with the first) is encrypted.
	encryptedBlockStride = 3
)

// ErrInvalidTrackKey indicates that the decryption key has the wrong length.
var ErrInvalidTrackKey = errors.New("track key must be 16 bytes")

// StreamReader decrypts an encrypted audio stream on the fly.
// The stream consists of 2048-byte blocks where every third block
// (indexes 0, 3, 6, ...) is Blowfish-encrypted with the per-track key
// and each 8-byte group is enciphered independently. All other bytes
// pass through unmodified.
//
// StreamReader performs a single forward pass and keeps at most one
// block in memory.
type StreamReader struct {
	src        io.Reader
	cipher     *blowfish.Cipher
	block      []byte
	unread     []byte
	blockIndex uint64
	err        error
}

// NewStreamReader wraps src with a decrypting reader using the given per-track key.
func NewStreamReader(src io.Reader, key []byte) (*StreamReader, error) {
	if len(key) != trackKeySize {
		return nil, ErrInvalidTrackKey
	}

	cipher, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	return &StreamReader{
		src:    src,
		cipher: cipher,
		block:  make([]byte, streamBlockSize),
	}, nil
}

// Read implements io.Reader.
func (r *StreamReader) Read(p []byte) (int, error) {
	for len(r.unread) == 0 {
		if r.err != nil {
			return 0, r.err
		}

		r.fillBlock()
	}

	n := copy(p, r.unread)
	r.unread = r.unread[n:]

	return n, nil
}

// fillBlock reads the next stream block from the source and decrypts it if needed.
func (r *StreamReader) fillBlock() {
	n, err := io.ReadFull(r.src, r.block)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			// Short final block: decryptable prefix handled below, the tail passes through.
			r.err = io.EOF
		} else {
			r.err = err
		}
	}

	if n == 0 {
		return
	}

	data := r.block[:n]
	if r.blockIndex%encryptedBlockStride == 0 {
		r.decryptAligned(data)
	}

	r.blockIndex++
	r.unread = data
}

// decryptAligned deciphers the 8-byte-aligned prefix of data in place.
// A trailing remainder shorter than the cipher granularity is left as-is.
func (r *StreamReader) decryptAligned(data []byte) {
	span := len(data) - len(data)%blowfish.BlockSize
	for offset := 0; offset < span; offset += blowfish.BlockSize {
		group := data[offset : offset+blowfish.BlockSize]
		r.cipher.Decrypt(group, group)
	}
}
