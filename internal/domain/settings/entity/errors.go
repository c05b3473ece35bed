package entity

import "errors"

// ErrInvalidTone is returned when a tone outside the supported set is requested
var ErrInvalidTone = errors.New("invalid tone")
