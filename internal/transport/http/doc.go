// Package http provides custom HTTP transport decorators:
// request/response logging for debugging and User-Agent header injection
// for requests that must look like they come from a browser.
package http
