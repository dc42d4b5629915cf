// Package lifecycle provides stack lifecycle command helpers.
//
// This package contains utilities for building and executing the engine
// commands (preview, up, destroy) with consistent messaging, timing, and
// error handling patterns.
package lifecycle
