package optimizer

import (
	"errors"

	"go.uber.org/zap"
)

type option struct {
	logger *zap.Logger
	// How many kappa candidates to evaluate concurrently.
	// 0 and 1 - sequential sweep
	workers int
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	if o.workers < 0 {
		return errors.New("`workers` must not be negative")
	}
	return nil
}

type OptionFunc func(*option) error

func applyOpts(opts ...OptionFunc) (*option, error) {
	options := &option{
		logger: zap.NewNop(),
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

// WithWorkers evaluates up to n kappa candidates concurrently.
// The result does not depend on n.
func WithWorkers(n int) OptionFunc {
	return func(o *option) error {
		if n < 0 {
			return errors.New("`workers` must not be negative")
		}
		o.workers = n
		return nil
	}
}
