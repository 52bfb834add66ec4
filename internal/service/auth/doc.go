// Package auth provides browser-based credential extraction for Deezer.
//
// It opens a visible browser via go-rod, lets the user log in at
// deezer.com, then reads the long-lived `arl` session cookie from the
// browser profile and hands it back for persisting in the config file.
package auth
