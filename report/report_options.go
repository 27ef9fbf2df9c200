package report

import (
	"errors"
	"runtime"

	"go.uber.org/zap"
)

const (
	DefaultRounds      = 7
	DefaultCheckpoints = 7
)

type option struct {
	logger *zap.Logger
	// Hybrid provers are listed for 0 .. rounds-1 halving rounds.
	rounds int
	// Iterated provers are listed for 1 .. checkpoints checkpoints.
	checkpoints int
	workers     int
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	if o.rounds < 0 {
		return errors.New("`rounds` must not be negative")
	}
	if o.checkpoints < 0 {
		return errors.New("`checkpoints` must not be negative")
	}
	if o.workers <= 0 {
		return errors.New("`workers` must be greater than 0")
	}
	return nil
}

type OptionFunc func(*option) error

func applyOpts(opts ...OptionFunc) (*option, error) {
	options := &option{
		logger:      zap.NewNop(),
		rounds:      DefaultRounds,
		checkpoints: DefaultCheckpoints,
		workers:     runtime.NumCPU(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("logger is nil")
		}
		o.logger = logger
		return nil
	}
}

// WithRounds lists hybrid provers with 0 to n-1 halving rounds.
func WithRounds(n int) OptionFunc {
	return func(o *option) error {
		o.rounds = n
		return nil
	}
}

// WithCheckpoints lists iterated provers with 1 to n checkpoints.
func WithCheckpoints(n int) OptionFunc {
	return func(o *option) error {
		o.checkpoints = n
		return nil
	}
}

// WithWorkers sets how many rows are computed concurrently.
func WithWorkers(n int) OptionFunc {
	return func(o *option) error {
		o.workers = n
		return nil
	}
}
