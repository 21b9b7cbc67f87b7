// Package idgen generates work item identifiers; tests replace NewFunc for
// deterministic ids.
package idgen

import "github.com/google/uuid"

// NewFunc returns a random UUID string.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier.
func New() string { return NewFunc() }
