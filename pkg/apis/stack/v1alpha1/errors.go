package v1alpha1

import "errors"

// ErrStackNameEmpty is returned when no stack identifier is supplied.
var ErrStackNameEmpty = errors.New("stack name is empty")

// ErrStackNameInvalid is returned when the stack identifier cannot prefix a registry name.
var ErrStackNameInvalid = errors.New("stack name is invalid")

// ErrBuildContextEmpty is returned when the build context path is empty.
var ErrBuildContextEmpty = errors.New("build context is empty")

// ErrDockerfileEmpty is returned when the Dockerfile path is empty.
var ErrDockerfileEmpty = errors.New("dockerfile is empty")
