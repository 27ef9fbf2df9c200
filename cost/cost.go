// Package cost models the time needed to compute a proof of sequential squaring.
//
// Costs are expressed in squaring steps. The models follow the table-lookup prover, in which
// the proof exponent is processed kappa bits at a time using gamma precomputed group elements:
// a larger kappa shortens the amortised squaring term and grows the table construction term
// exponentially.
package cost

import (
	"fmt"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/shared"
)

// MaxRounds bounds the number of halving rounds of the hybrid prover.
const MaxRounds = 63

// Proof returns the cost of a proof over work squarings with batch parameter kappa
// and table size gamma:
//
//	ceil(MultSquareRatio * (work/kappa + gamma*2^kappa))
func Proof(work, gamma, kappa uint64, cfg config.Config) (uint64, error) {
	if kappa == 0 {
		return 0, fmt.Errorf("%w: kappa must be positive", shared.ErrDomain)
	}

	t := float64(work)/float64(kappa) + float64(gamma)*shared.Pow2(kappa)
	return shared.CeilUint64(cfg.MultSquareRatio * t), nil
}

// HybridProof returns the cost of a hybrid proof that runs rounds halving rounds before
// handing the remaining ceil(work/2^rounds) squarings to the table-lookup prover.
// Every halving round adds an overhead proportional to the security level:
//
//	ceil(MultSquareRatio * (t/kappa + gamma*2^kappa + 1.5*SecurityLevel*2^rounds*t/(kappa*gamma)))
func HybridProof(work uint64, rounds uint, gamma, kappa uint64, cfg config.Config) (uint64, error) {
	switch {
	case kappa == 0:
		return 0, fmt.Errorf("%w: kappa must be positive", shared.ErrDomain)
	case gamma == 0:
		return 0, fmt.Errorf("%w: gamma must be positive", shared.ErrDomain)
	case rounds > MaxRounds:
		return 0, fmt.Errorf("%w: rounds must be <= %d, given: %d", shared.ErrDomain, MaxRounds, rounds)
	}

	t := float64(shared.CeilDiv(work, uint64(1)<<rounds))
	split := shared.Pow2(uint64(rounds))

	c := t/float64(kappa) +
		float64(gamma)*shared.Pow2(kappa) +
		1.5*float64(cfg.SecurityLevel)*split*t/(float64(kappa)*float64(gamma))
	return shared.CeilUint64(cfg.MultSquareRatio * c), nil
}
