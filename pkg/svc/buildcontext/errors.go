package buildcontext

import "errors"

// ErrContextNotDirectory is returned when the build context is not a directory.
var ErrContextNotDirectory = errors.New("build context is not a directory")

// ErrDockerfileNotFound is returned when the Dockerfile does not exist.
var ErrDockerfileNotFound = errors.New("dockerfile not found")

// ErrDockerfileNotRegular is returned when the Dockerfile is a directory or special file.
var ErrDockerfileNotRegular = errors.New("dockerfile is not a regular file")
