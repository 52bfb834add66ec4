// Package deezer contains the download pipeline: track reference parsing,
// CDN source resolution, streaming download with on-the-fly decryption,
// and metadata tagging of the finished file.
package deezer
