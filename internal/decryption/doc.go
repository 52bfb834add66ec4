// Package decryption implements the track stream cipher:
// per-track Blowfish keys derived from the track identifier,
// and a streaming reader that transparently decrypts the
// encrypted blocks of a downloaded audio stream.
package decryption
