package deezer

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrAPITokenNotFound indicates that no API token could be scraped from the landing page.
	ErrAPITokenNotFound = errors.New("API token not found in landing page")
	// ErrInvalidCredential indicates that the gateway did not accept the ARL token.
	ErrInvalidCredential = errors.New("ARL token was not accepted, get a fresh one from your browser")
	// ErrTokenRejected indicates that the API token was still rejected after a refresh.
	ErrTokenRejected = errors.New("API token rejected after refresh")
	// ErrTrackNotFound indicates that the requested track does not exist.
	ErrTrackNotFound = errors.New("track not found")
	// ErrRightsRestricted indicates that streaming rights deny access to the track.
	ErrRightsRestricted = errors.New("track is not available for streaming")
	// ErrGatewayError indicates a gateway-level error that is not token related.
	ErrGatewayError = errors.New("gateway returned an error")

	// errStaleToken marks a gateway response demanding a fresh API token.
	// It is consumed internally by the single-retry refresh.
	errStaleToken = errors.New("gateway requires a valid API token")
)
