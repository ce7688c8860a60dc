package entity

import "errors"

// ErrNotFound is returned when neither an id lookup nor an
// (address, sub-index) lookup matches any configured entity.
var ErrNotFound = errors.New("entity: not found")
