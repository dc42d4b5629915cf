package configmanager

import "errors"

// ErrFieldNotAddressable is returned when a field selector yields no field.
var ErrFieldNotAddressable = errors.New("field selector returned nil")
