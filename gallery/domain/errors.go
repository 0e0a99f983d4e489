package domain

import "errors"

// ErrImageNotFound is returned when an image record does not exist.
var ErrImageNotFound = errors.New("image not found")
