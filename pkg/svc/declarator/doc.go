// Package declarator builds the desired-state description of one stack: the container
// registry, its access and lifecycle policies, the built image and the exported image name.
//
// A Declaration is plain data. Nothing in this package talks to a provider; the
// dependency graph carried by a Declaration tells an engine which resource must be
// materialized before another can reference its outputs.
package declarator
