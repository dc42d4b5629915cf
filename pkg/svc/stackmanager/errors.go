package stackmanager

import "errors"

// ErrConcurrentUpdate is returned when another update holds the stack lock.
var ErrConcurrentUpdate = errors.New("another update is in progress for this stack")

// ErrStackNotFound is returned when outputs are requested for a stack that does not exist.
var ErrStackNotFound = errors.New("stack not found")

// ErrProjectNotFound is returned when no Pulumi project file exists above the program directory.
var ErrProjectNotFound = errors.New("pulumi project not found")
