package stack

import "errors"

// ErrUnsupportedOutputFormat is returned when render is asked for an unknown format.
var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

// ErrImageOutputMissing is returned when a stack has not exported the image name yet.
var ErrImageOutputMissing = errors.New("image output missing, run 'up' first")
