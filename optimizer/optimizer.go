// Package optimizer searches the batch parameter of the table-lookup prover that minimises
// the cost of a proof under a memory budget.
package optimizer

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/cost"
	"github.com/spacemeshos/vdfcost/shared"
)

// Params is the cheapest (gamma, kappa) pair found for a work amount, with its cost.
type Params struct {
	Gamma uint64 `json:"gamma"`
	Kappa uint64 `json:"kappa"`
	Cost  uint64 `json:"cost"`
}

// Speedup returns how many times cheaper the proof is than the evaluation of work squarings.
func (p Params) Speedup(work uint64) float64 {
	if p.Cost == 0 {
		return 0
	}
	return float64(work) / float64(p.Cost)
}

type costFunc func(gamma, kappa uint64) (uint64, error)

// KappaRange returns the half-open range [lo, hi) of batch parameters swept for work,
// which is [1, ceil(log2(work))). For work == 2 the range is widened to [1, 2) so that
// every work amount above 1 has a candidate. The range is empty for work <= 1.
func KappaRange(work uint64) (lo, hi uint64) {
	if work <= 1 {
		return 1, 1
	}
	hi = shared.CeilLog2(work)
	if hi < 2 {
		hi = 2
	}
	return 1, hi
}

// TableSize returns the number of precomputed elements used with batch parameter kappa.
// With a memory bound it is the smallest gamma such that
// work/(gamma*kappa) * ModulusLength < MemoryBound; without one it is 1.
// It returns 0 for kappa 0, which the cost functions reject.
func TableSize(work, kappa uint64, cfg config.Config) uint64 {
	if kappa == 0 {
		return 0
	}
	if !cfg.Bounded() {
		return 1
	}
	return shared.CeilUint64(float64(work) / (float64(cfg.MemoryBound) * float64(kappa)) * float64(cfg.ModulusLength))
}

// Optimize returns the parameters minimising the cost of a proof over work squarings.
func Optimize(work uint64, cfg config.Config, opts ...OptionFunc) (Params, error) {
	return optimize(work, cfg, func(gamma, kappa uint64) (uint64, error) {
		return cost.Proof(work, gamma, kappa, cfg)
	}, opts...)
}

// OptimizeHybrid returns the parameters minimising the cost of a hybrid proof with the given
// number of halving rounds.
func OptimizeHybrid(work uint64, rounds uint, cfg config.Config, opts ...OptionFunc) (Params, error) {
	return optimize(work, cfg, func(gamma, kappa uint64) (uint64, error) {
		return cost.HybridProof(work, rounds, gamma, kappa, cfg)
	}, opts...)
}

func optimize(work uint64, cfg config.Config, model costFunc, opts ...OptionFunc) (Params, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return Params{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Params{}, err
	}

	lo, hi := KappaRange(work)
	if lo >= hi {
		return Params{}, fmt.Errorf("%w: expected: > 1, given: %d", shared.ErrInvalidWorkAmount, work)
	}

	candidates := make([]Params, hi-lo)
	evaluate := func(i int) error {
		kappa := lo + uint64(i)
		gamma := TableSize(work, kappa, cfg)
		c, err := model(gamma, kappa)
		if err != nil {
			return fmt.Errorf("kappa %d: %w", kappa, err)
		}
		candidates[i] = Params{Gamma: gamma, Kappa: kappa, Cost: c}
		return nil
	}

	if options.workers > 1 {
		var eg errgroup.Group
		eg.SetLimit(options.workers)
		for i := range candidates {
			i := i
			eg.Go(func() error {
				return evaluate(i)
			})
		}
		if err := eg.Wait(); err != nil {
			return Params{}, err
		}
	} else {
		for i := range candidates {
			if err := evaluate(i); err != nil {
				return Params{}, err
			}
		}
	}

	// Candidates are scanned in kappa order regardless of how they were evaluated,
	// so ties keep the lowest kappa.
	var best Params
	found := false
	for _, p := range candidates {
		if !found || p.Cost < best.Cost {
			best = p
			found = true
		}
	}

	options.logger.Debug("optimized batch parameter",
		zap.Uint64("work", work),
		zap.Uint64("kappa", best.Kappa),
		zap.Uint64("gamma", best.Gamma),
		zap.Uint64("cost", best.Cost),
	)
	return best, nil
}
