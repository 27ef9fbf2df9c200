// Package checkpoint places checkpoints along a sequential squaring computation so that the
// proofs of the segments are produced while the evaluation continues.
//
// After the first checkpoint the prover is always busy: every following checkpoint is the
// point at which the proof for the previous segment completes. The last proof is the only
// one that is computed after the evaluation ends, and its cost is the overhead of the prover.
package checkpoint

import (
	"fmt"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
	"github.com/spacemeshos/vdfcost/shared"
)

// Find returns the schedule of n segment durations that starts with first. Entry i > 0 is the
// optimized cost of proving entry i-1.
func Find(first uint64, n int, cfg config.Config, opts ...OptionFunc) ([]uint64, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if err := validateCount(n); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return find(first, n, cfg, options)
}

func validateCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: expected: >= 1, given: %d", shared.ErrInvalidCheckpointCount, n)
	}
	return nil
}

func find(first uint64, n int, cfg config.Config, options *option) ([]uint64, error) {

	schedule := make([]uint64, 1, n)
	schedule[0] = first
	for i := 1; i < n; i++ {
		p, err := optimizer.Optimize(schedule[i-1], cfg, options.optimizerOpts...)
		if err != nil {
			return nil, fmt.Errorf("checkpoint %d: %w", i, err)
		}
		schedule = append(schedule, p.Cost)
	}
	return schedule, nil
}

func sum(schedule []uint64) uint64 {
	var total uint64
	for _, d := range schedule {
		total += d
	}
	return total
}
