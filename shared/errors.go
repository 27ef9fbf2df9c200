package shared

import (
	"errors"
)

var (
	ErrInvalidWorkAmount      = errors.New("invalid work amount")
	ErrInvalidConfig          = errors.New("invalid config")
	ErrDomain                 = errors.New("domain error")
	ErrNoConvergence          = errors.New("checkpoint search did not converge")
	ErrInvalidCheckpointCount = errors.New("invalid checkpoint count")
)
