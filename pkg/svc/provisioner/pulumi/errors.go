package pulumiprovisioner

import "errors"

// ErrUnsupportedKind is returned for graph nodes this package cannot register.
var ErrUnsupportedKind = errors.New("unsupported resource kind")

// ErrUnresolvedReference is returned when a resource references one that is not registered yet.
var ErrUnresolvedReference = errors.New("unresolved resource reference")
