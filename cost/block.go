package cost

import (
	"fmt"
	"math/bits"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/shared"
)

// MaxBlockSize bounds the block size of the block prover. Its tables hold 2^blockSize
// group elements.
const MaxBlockSize = 32

// Ops counts the group operations performed by a prover.
type Ops struct {
	Squarings       uint64 `json:"squarings"`
	Multiplications uint64 `json:"multiplications"`
}

func (o Ops) Total() uint64 {
	return o.Squarings + o.Multiplications
}

// Speedup returns work/(S+M), how many times faster the proof is than the evaluation.
func (o Ops) Speedup(work uint64) float64 {
	if o.Total() == 0 {
		return 0
	}
	return float64(work) / float64(o.Total())
}

// Cost returns the operations in squaring steps, weighting multiplications by
// MultSquareRatio.
func (o Ops) Cost(cfg config.Config) uint64 {
	return o.Squarings + shared.CeilUint64(cfg.MultSquareRatio*float64(o.Multiplications))
}

func (o Ops) add(other Ops) Ops {
	return Ops{
		Squarings:       o.Squarings + other.Squarings,
		Multiplications: o.Multiplications + other.Multiplications,
	}
}

// Exponentiation returns the operations of a left-to-right square-and-multiply raising an
// element to the power e: one squaring per bit below the leading one and one
// multiplication per set bit below it.
func Exponentiation(e uint64) Ops {
	if e == 0 {
		return Ops{}
	}
	return Ops{
		Squarings:       uint64(bits.Len64(e) - 1),
		Multiplications: uint64(bits.OnesCount64(e) - 1),
	}
}

// exponentiations returns the sum of Exponentiation(i << shift) for 0 <= i < 2^m.
func exponentiations(m, shift uint64) Ops {
	if m == 0 {
		return Ops{}
	}
	// Among 1 <= i < 2^m, 2^(b-1) values have bit length b.
	var squarings uint64
	for b := uint64(1); b <= m; b++ {
		squarings += (b - 1 + shift) << (b - 1)
	}
	// Every bit is set in half of the values.
	multiplications := m<<(m-1) - (uint64(1)<<m - 1)
	return Ops{Squarings: squarings, Multiplications: multiplications}
}

// BlockProver counts the operations of the block prover over work squarings.
//
// The prover keeps a checkpoint every blockSize*blocksPerCheckpoint squarings and makes
// blocksPerCheckpoint passes. Each pass squares the running result blockSize times, sorts
// every checkpoint into one of 2^blockSize buckets with one multiplication, and folds the
// buckets back into the result as a 2^k1 x 2^k0 grid (k1 = blockSize/2, k0 = blockSize-k1):
// every row and every column is multiplied out, raised to its index and multiplied into
// the result.
func BlockProver(work, blockSize, blocksPerCheckpoint uint64) (Ops, error) {
	switch {
	case work == 0:
		return Ops{}, fmt.Errorf("%w: work must be positive", shared.ErrDomain)
	case blockSize == 0 || blockSize > MaxBlockSize:
		return Ops{}, fmt.Errorf("%w: block size must be in [1, %d], given: %d", shared.ErrDomain, MaxBlockSize, blockSize)
	case blocksPerCheckpoint == 0:
		return Ops{}, fmt.Errorf("%w: blocks per checkpoint must be positive", shared.ErrDomain)
	}
	hi, interval := bits.Mul64(blockSize, blocksPerCheckpoint)
	if hi != 0 {
		return Ops{}, fmt.Errorf("%w: checkpoint interval overflows", shared.ErrDomain)
	}

	k1 := blockSize / 2
	k0 := blockSize - k1
	rows, cols := uint64(1)<<k1, uint64(1)<<k0
	checkpoints := shared.CeilDiv(work, interval)

	pass := Ops{
		Squarings:       blockSize,
		Multiplications: checkpoints + rows*(cols+1) + cols*(rows+1),
	}
	pass = pass.add(exponentiations(k1, k0))
	pass = pass.add(exponentiations(k0, 0))

	return Ops{
		Squarings:       pass.Squarings * blocksPerCheckpoint,
		Multiplications: pass.Multiplications * blocksPerCheckpoint,
	}, nil
}
