package experiment

import (
	"github.com/pkg/errors"
)

// Errors
var (
	ErrInvalidConfig = errors.New("invalid experiment config")
	ErrUnknownMetric = errors.New("unknown metric")
)
