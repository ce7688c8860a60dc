package store

import "errors"

// ErrBadConfig is returned when a configuration document fails structural
// validation that normalisation cannot repair (malformed JSON).
var ErrBadConfig = errors.New("store: invalid configuration document")
