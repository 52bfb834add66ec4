// Package deezer provides a Go client for the Deezer gw-light gateway.
// It owns the authenticated session: the ARL cookie, the scraped and
// confirmed API tokens, and the single-retry token refresh. On top of
// the session it offers track metadata retrieval, media list lookups,
// CDN probing, and content downloading with cookie-based authentication
// and user-agent management.
package deezer
