// Package app provides the main application logic for downloading a track
// from Deezer. It wires together the gateway client, URL processor, source
// resolver, and tag processor, and maps terminal failures to actionable
// messages.
package app
