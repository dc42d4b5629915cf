// Package io provides input and output utilities for stack configuration.
//
// Subpackages:
//   - config-manager: Configuration loading and management
//   - marshaller: Serialization of declarations for display
package io
