package colouring

import (
	"github.com/pkg/errors"

	"github.com/ScottSallinen/colourstab/graph"
)

// Errors
var (
	ErrInvalidParameter      = graph.ErrInvalidParameter
	ErrInvalidPalette        = errors.New("invalid palette")
	ErrReserveExhausted      = errors.New("reserve colours exhausted")
	ErrPerturbationSaturated = errors.New("no non-adjacent vertex pair remains")
	ErrDidNotConverge        = errors.New("did not converge")
)
