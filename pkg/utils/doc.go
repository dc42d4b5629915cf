// Package utils provides utility packages for common operations.
//
//   - envvar: Expansion of ${NAME} placeholders in configuration values
//   - notify: Formatted message display with symbols, colors, and elapsed time
package utils
