package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
	"github.com/spacemeshos/vdfcost/shared"
)

func TestFind(t *testing.T) {
	r := require.New(t)
	cfg := config.DefaultConfig()

	for n := 1; n <= 7; n++ {
		schedule, err := Find(1<<20, n, cfg)
		r.NoError(err)
		r.Len(schedule, n)
		r.Equal(uint64(1<<20), schedule[0])

		for i := 1; i < n; i++ {
			p, err := optimizer.Optimize(schedule[i-1], cfg)
			r.NoError(err)
			r.Equal(p.Cost, schedule[i])
		}
	}
}

func TestFind_NonIncreasing(t *testing.T) {
	schedule, err := Find(1<<39, 7, config.DefaultConfig())
	require.NoError(t, err)

	for i := 2; i < len(schedule); i++ {
		require.LessOrEqual(t, schedule[i], schedule[i-1])
	}
	require.Less(t, schedule[1], schedule[0])
}

func TestFind_SingleCheckpoint(t *testing.T) {
	schedule, err := Find(0, 1, config.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, schedule)
}

func TestFind_InvalidCount(t *testing.T) {
	_, err := Find(1<<20, 0, config.DefaultConfig())
	require.ErrorIs(t, err, shared.ErrInvalidCheckpointCount)
}

func TestFind_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MultSquareRatio = 0

	_, err := Find(1<<20, 1, cfg)
	require.ErrorIs(t, err, shared.ErrInvalidConfig)
}

func TestFind_ScheduleReachesInvalidWork(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MultSquareRatio = 0.1
	cfg.MemoryBound = 0

	// 3 -> ceil(0.1 * (3/1 + 2)) = 1, which cannot be proven.
	_, err := Find(3, 3, cfg)
	require.ErrorIs(t, err, shared.ErrInvalidWorkAmount)
}

func TestFind_Fresh(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := Find(1<<20, 4, cfg)
	require.NoError(t, err)
	b, err := Find(1<<20, 4, cfg)
	require.NoError(t, err)
	require.Equal(t, a, b)

	a[0] = 0
	require.Equal(t, uint64(1<<20), b[0])
}
