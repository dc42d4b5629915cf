// Package imageref parses the image address exported by a stack.
package imageref
