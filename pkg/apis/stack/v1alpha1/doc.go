// Package v1alpha1 defines the StackConfig type that drives a single declaration pass.
//
// A StackConfig is the explicit replacement for reading the current stack from ambient
// engine state: every consumer receives the stack identifier and build inputs as a value.
package v1alpha1
