package graph

import "github.com/pkg/errors"

// Errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSelfLoop         = errors.New("self loop")
	ErrVertexRange      = errors.New("vertex id out of range")
	ErrConstructFailed  = errors.New("could not construct a connected graph")
)
