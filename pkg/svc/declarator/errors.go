package declarator

import "errors"

// ErrDependencyCycle is returned when the resource graph cannot be ordered.
var ErrDependencyCycle = errors.New("resource graph contains a dependency cycle")

// ErrUnknownNode is returned when an edge references a node that was never declared.
var ErrUnknownNode = errors.New("resource graph references an unknown node")

// ErrDuplicateNode is returned when two declarations share a logical name.
var ErrDuplicateNode = errors.New("resource graph contains a duplicate node")
