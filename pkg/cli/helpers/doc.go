// Package helpers provides common CLI utilities for command handling.
//
// Key functionality:
//   - Global flag names and lookups (verbose, workdir)
//   - Logger configuration from flags
package helpers
