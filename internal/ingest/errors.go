package ingest

import (
	"errors"
	"fmt"
)

// ErrMalformedScore marks a score whose mods carry custom settings. Such a score
// has no canonical combo and is skipped.
var ErrMalformedScore = errors.New("score mods carry custom settings")

type ExternalSourceError struct {
	Op  string
	Err error
}

func (e *ExternalSourceError) Error() string {
	return fmt.Sprintf("external source: %s: %v", e.Op, e.Err)
}

func (e *ExternalSourceError) Unwrap() error {
	return e.Err
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
