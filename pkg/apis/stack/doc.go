// Package stack contains the API types describing one deployment stack of the
// local API gateway registry infrastructure.
package stack
