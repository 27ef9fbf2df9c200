// Package report compares the overhead and proof size of hybrid and iterated provers for a
// given amount of work.
package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/vdfcost/checkpoint"
	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
	"github.com/spacemeshos/vdfcost/shared"
)

type Scheme string

const (
	// SchemeHybrid runs halving rounds before the table-lookup prover.
	SchemeHybrid Scheme = "hybrid"
	// SchemeIterated proves segments between checkpoints while the evaluation continues.
	SchemeIterated Scheme = "iterated"
)

type Row struct {
	Scheme Scheme `json:"scheme"`
	// Parameter is the number of halving rounds (hybrid) or of checkpoints (iterated).
	Parameter int `json:"parameter"`
	// ProofSize is in bytes.
	ProofSize uint64 `json:"proofSize"`
	Cost      uint64 `json:"cost"`
	// Overhead is the cost in percent of the work.
	Overhead float64 `json:"overhead"`
}

func (r Row) Prover() string {
	switch r.Scheme {
	case SchemeHybrid:
		return fmt.Sprintf("hybrid, %d halving rounds", r.Parameter)
	case SchemeIterated:
		return fmt.Sprintf("%d-iterated", r.Parameter)
	default:
		return string(r.Scheme)
	}
}

type Report struct {
	Work   uint64        `json:"work"`
	Config config.Config `json:"config"`
	Rows   []Row         `json:"rows"`
}

// HybridProofSize returns the size in bytes of a hybrid proof with the given halving rounds:
// one group element per round plus the final one.
func HybridProofSize(rounds int, cfg config.Config) uint64 {
	bits := uint64(rounds+1) * uint64(cfg.ModulusLength)
	return shared.CeilDiv(bits, 8)
}

// IteratedProofSize returns the size in bytes of n proofs: one group element per proof and
// two security-level sized challenges linking consecutive proofs.
func IteratedProofSize(n int, cfg config.Config) uint64 {
	bits := uint64(n)*uint64(cfg.ModulusLength) + uint64(n-1)*2*uint64(cfg.SecurityLevel)
	return shared.CeilDiv(bits, 8)
}

func overhead(cost, work uint64) float64 {
	return 100 * float64(cost) / float64(work)
}

// Generate computes the report rows for work squarings. Rows are computed concurrently and
// listed hybrid provers first, each group in ascending parameter order.
func Generate(ctx context.Context, work uint64, cfg config.Config, opts ...OptionFunc) (*Report, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := options.logger.With(zap.Uint64("work", work))

	rows := make([]Row, options.rounds+options.checkpoints)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(options.workers)

	for i := 0; i < options.rounds; i++ {
		rounds := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := optimizer.OptimizeHybrid(work, uint(rounds), cfg, optimizer.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("hybrid prover with %d rounds: %w", rounds, err)
			}
			rows[rounds] = Row{
				Scheme:    SchemeHybrid,
				Parameter: rounds,
				ProofSize: HybridProofSize(rounds, cfg),
				Cost:      p.Cost,
				Overhead:  overhead(p.Cost, work),
			}
			return nil
		})
	}

	for i := 0; i < options.checkpoints; i++ {
		idx, n := options.rounds+i, i+1
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := checkpoint.Search(work, n, cfg, checkpoint.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("%d-iterated prover: %w", n, err)
			}
			rows[idx] = Row{
				Scheme:    SchemeIterated,
				Parameter: n,
				ProofSize: IteratedProofSize(n, cfg),
				Cost:      res.Overhead,
				Overhead:  overhead(res.Overhead, work),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Info("report generated", zap.Int("rows", len(rows)))
	return &Report{
		Work:   work,
		Config: cfg,
		Rows:   rows,
	}, nil
}
