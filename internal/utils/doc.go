// Package utils holds small helpers shared across the application:
// filename sanitization, safe integer conversions, file checks,
// and User-Agent provisioning for outgoing HTTP requests.
package utils
