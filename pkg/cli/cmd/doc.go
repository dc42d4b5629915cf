// Package cmd provides the command-line interface for the registry stack.
//
// This package contains the root command and delegates to the stack package for
// render, preflight, preview, up, destroy and outputs.
package cmd
