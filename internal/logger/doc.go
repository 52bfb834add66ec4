// Package logger provides structured logging built on Zap.
// All logging goes through context-aware package functions (Infof, Warnf, ...)
// so a request-scoped logger can be carried in the context.
// The global level is adjustable at runtime, which the progress bar
// rendering relies on.
package logger
