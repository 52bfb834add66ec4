package deezer

import "errors"

// Static error definitions for better error handling.
var (
	// ErrInvalidTrackReference indicates that the input is neither a track ID,
	// a track URL, nor a resolvable short link.
	ErrInvalidTrackReference = errors.New("input is not a track ID or a recognizable track URL")
	// ErrNoPlayableSource indicates that every resolution strategy was
	// exhausted and the track offers no preview either.
	ErrNoPlayableSource = errors.New("no playable source found for track")
	// ErrIncompleteDownload indicates that the downloaded file size doesn't match expected size.
	ErrIncompleteDownload = errors.New("incomplete download")
	// ErrShortLinkNotResolved indicates that a short link did not lead to a track page.
	ErrShortLinkNotResolved = errors.New("short link did not resolve to a track URL")
)
