package checkpoint

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
	"github.com/spacemeshos/vdfcost/shared"
)

// Result is the outcome of a checkpoint search.
type Result struct {
	// Schedule holds the n segment durations. For a single checkpoint it is [0].
	Schedule []uint64 `json:"schedule"`

	// Overhead is the optimized cost of proving the last segment, which starts when the
	// evaluation ends.
	Overhead         uint64  `json:"overhead"`
	OverheadFraction float64 `json:"overheadFraction"`

	Evaluations int `json:"evaluations"`
}

// Sum returns the total duration of the schedule.
func (r *Result) Sum() uint64 {
	return sum(r.Schedule)
}

// Positions returns the absolute position of every checkpoint, i.e. the running sum of the
// schedule.
func (r *Result) Positions() []uint64 {
	positions := make([]uint64, len(r.Schedule))
	var at uint64
	for i, d := range r.Schedule {
		at += d
		positions[i] = at
	}
	return positions
}

// ConvergenceError is returned when the checkpoint search leaves its domain or exceeds its
// evaluation budget.
type ConvergenceError struct {
	Checkpoint  uint64
	Step        uint64
	Total       uint64
	Evaluations int

	// Cause is set when a schedule derived by the search could not be optimized,
	// e.g. because a segment shrank below two squarings.
	Cause error
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("checkpoint search did not converge after %d evaluations: checkpoint %d, step %d, total %d",
		e.Evaluations, e.Checkpoint, e.Step, e.Total)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConvergenceError) Unwrap() error {
	return shared.ErrNoConvergence
}

// Search places n checkpoints over work squarings so that the schedule sums as close as
// possible to work, and reports the overhead of the last proof.
//
// The first checkpoint is found by a bisection with integer steps starting at work/2 with
// step work/4. The relation between the first checkpoint and the schedule sum is not
// guaranteed to be monotonic, so the result is a best-effort approximation: the sum is at
// most work, and moving the first checkpoint by one overshoots unless the sum equals work.
// Searches that do not settle within the evaluation budget fail with a ConvergenceError.
func Search(work uint64, n int, cfg config.Config, opts ...OptionFunc) (*Result, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if err := validateCount(n); err != nil {
		return nil, err
	}
	if work <= 1 {
		return nil, fmt.Errorf("%w: expected: > 1, given: %d", shared.ErrInvalidWorkAmount, work)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := options.logger.With(zap.Uint64("work", work), zap.Int("checkpoints", n))

	if n == 1 {
		p, err := optimizer.Optimize(work, cfg, options.optimizerOpts...)
		if err != nil {
			return nil, err
		}
		return &Result{
			Schedule:         []uint64{0},
			Overhead:         p.Cost,
			OverheadFraction: float64(p.Cost) / float64(work),
		}, nil
	}

	s := &search{
		work:    work,
		n:       n,
		cfg:     cfg,
		options: options,
	}
	checkpoint, step := work/2, work/4

	for step != 0 {
		total, err := s.total(checkpoint, step)
		if err != nil {
			return nil, err
		}

		for total < work {
			checkpoint += step
			if total, err = s.total(checkpoint, step); err != nil {
				return nil, err
			}
		}

		for total > work {
			if step >= checkpoint {
				return nil, s.convergenceError(checkpoint, step, total, nil)
			}
			checkpoint -= step
			if total, err = s.total(checkpoint, step); err != nil {
				return nil, err
			}
		}

		logger.Debug("bisection step", zap.Uint64("checkpoint", checkpoint), zap.Uint64("step", step), zap.Uint64("total", total))
		step /= 2
	}

	schedule, err := s.schedule(checkpoint, step)
	if err != nil {
		return nil, err
	}

	last := schedule[n-1]
	p, err := optimizer.Optimize(last, cfg, options.optimizerOpts...)
	if err != nil {
		return nil, s.wrap(checkpoint, step, sum(schedule), fmt.Errorf("last segment: %w", err))
	}

	res := &Result{
		Schedule:         schedule,
		Overhead:         p.Cost,
		OverheadFraction: float64(p.Cost) / float64(work),
		Evaluations:      s.evaluations,
	}
	logger.Info("checkpoint search completed",
		zap.Uint64("first", checkpoint),
		zap.Uint64("sum", res.Sum()),
		zap.Uint64("overhead", res.Overhead),
		zap.Int("evaluations", res.Evaluations),
	)
	return res, nil
}

type search struct {
	work        uint64
	n           int
	cfg         config.Config
	options     *option
	evaluations int
}

func (s *search) schedule(checkpoint, step uint64) ([]uint64, error) {
	if s.evaluations >= s.options.maxEvaluations {
		return nil, s.convergenceError(checkpoint, step, 0, nil)
	}
	s.evaluations++
	schedule, err := find(checkpoint, s.n, s.cfg, s.options)
	if err != nil {
		return nil, s.wrap(checkpoint, step, 0, err)
	}
	return schedule, nil
}

func (s *search) total(checkpoint, step uint64) (uint64, error) {
	schedule, err := s.schedule(checkpoint, step)
	if err != nil {
		return 0, err
	}
	return sum(schedule), nil
}

// wrap reports a work amount rejected by the optimizer as a ConvergenceError. The amount
// was derived by the search, not given by the caller.
func (s *search) wrap(checkpoint, step, total uint64, err error) error {
	if errors.Is(err, shared.ErrInvalidWorkAmount) {
		return s.convergenceError(checkpoint, step, total, err)
	}
	return err
}

func (s *search) convergenceError(checkpoint, step, total uint64, cause error) error {
	return &ConvergenceError{
		Checkpoint:  checkpoint,
		Step:        step,
		Total:       total,
		Evaluations: s.evaluations,
		Cause:       cause,
	}
}
