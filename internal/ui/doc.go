// Package ui provides helpers for formatting human-readable console output.
//
// The helpers render command lifecycle events as concise messages so that
// console users see actionable feedback while structured telemetry keeps
// flowing through the zap logger.
package ui
