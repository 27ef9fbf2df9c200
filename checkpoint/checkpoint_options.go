package checkpoint

import (
	"errors"

	"go.uber.org/zap"

	"github.com/spacemeshos/vdfcost/optimizer"
)

// DefaultMaxEvaluations bounds the number of schedules evaluated by Search.
const DefaultMaxEvaluations = 1 << 12

type option struct {
	logger *zap.Logger
	// maxEvaluations is the number of schedules Search may evaluate before giving up.
	maxEvaluations int
	optimizerOpts  []optimizer.OptionFunc
}

func (o *option) validate() error {
	if o.logger == nil {
		return errors.New("`logger` is required")
	}
	if o.maxEvaluations <= 0 {
		return errors.New("`maxEvaluations` must be greater than 0")
	}
	return nil
}

type OptionFunc func(*option) error

func applyOpts(opts ...OptionFunc) (*option, error) {
	options := &option{
		logger:         zap.NewNop(),
		maxEvaluations: DefaultMaxEvaluations,
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

// WithMaxEvaluations sets how many schedules Search may evaluate before it fails with a
// ConvergenceError.
func WithMaxEvaluations(n int) OptionFunc {
	return func(o *option) error {
		if n <= 0 {
			return errors.New("`maxEvaluations` must be greater than 0")
		}
		o.maxEvaluations = n
		return nil
	}
}

// WithOptimizerOptions passes opts to every parameter optimization.
func WithOptimizerOptions(opts ...optimizer.OptionFunc) OptionFunc {
	return func(o *option) error {
		o.optimizerOpts = append(o.optimizerOpts, opts...)
		return nil
	}
}
