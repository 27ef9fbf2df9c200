package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/vdfcost/checkpoint"
	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
	"github.com/spacemeshos/vdfcost/report"
	"github.com/spacemeshos/vdfcost/shared"
)

// resetFlags restores every flag of c and its children to its default, so that
// consecutive executions of rootCmd do not leak state.
func resetFlags(t *testing.T, c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(t, child)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	resetFlags(t, rootCmd)
	t.Cleanup(func() { resetFlags(t, rootCmd) })

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOptimize(t *testing.T) {
	out, err := execute(t, "optimize", "--work", "1048576")
	require.NoError(t, err)

	p, err := optimizer.Optimize(1<<20, config.DefaultConfig())
	require.NoError(t, err)
	require.Contains(t, out, fmt.Sprintf("kappa:    %d\n", p.Kappa))
	require.Contains(t, out, fmt.Sprintf("gamma:    %d\n", p.Gamma))
	require.Contains(t, out, fmt.Sprintf("cost:     %d\n", p.Cost))
	require.NotContains(t, out, "rounds:")
}

func TestOptimizeHybrid(t *testing.T) {
	out, err := execute(t, "optimize", "--work", "1048576", "--hybrid-rounds", "3", "--workers", "4")
	require.NoError(t, err)

	p, err := optimizer.OptimizeHybrid(1<<20, 3, config.DefaultConfig())
	require.NoError(t, err)
	require.Contains(t, out, "rounds:   3\n")
	require.Contains(t, out, fmt.Sprintf("cost:     %d\n", p.Cost))
}

func TestOptimizeInvalidWork(t *testing.T) {
	_, err := execute(t, "optimize", "--work", "1")
	require.ErrorIs(t, err, shared.ErrInvalidWorkAmount)
}

func TestCheckpoints(t *testing.T) {
	out, err := execute(t, "checkpoints", "--work", "16777216", "--count", "3")
	require.NoError(t, err)

	res, err := checkpoint.Search(1<<24, 3, config.DefaultConfig())
	require.NoError(t, err)
	require.Contains(t, out, fmt.Sprintf("schedule:    %v\n", res.Schedule))
	require.Contains(t, out, fmt.Sprintf("positions:   %v\n", res.Positions()))
	require.Contains(t, out, fmt.Sprintf("overhead:    %d ", res.Overhead))
}

func TestSchedule(t *testing.T) {
	out, err := execute(t, "schedule", "--first", "1000000", "--count", "3")
	require.NoError(t, err)

	schedule, err := checkpoint.Find(1000000, 3, config.DefaultConfig())
	require.NoError(t, err)
	require.Contains(t, out, "0\t1000000\t1000000\n")
	require.Contains(t, out, fmt.Sprintf("1\t%d\t%d\n", schedule[1], schedule[0]+schedule[1]))
}

func TestScheduleInvalidCount(t *testing.T) {
	_, err := execute(t, "schedule", "--first", "1000000", "--count", "0")
	require.ErrorIs(t, err, shared.ErrInvalidCheckpointCount)
}

func TestReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	out, err := execute(t, "report", "--work", "1073741824", "--rounds", "3", "--checkpoints", "2", "--out", path)
	require.NoError(t, err)
	require.Contains(t, out, "hybrid, 2 halving rounds")
	require.Contains(t, out, "2-iterated")
	require.Contains(t, out, "report written to "+path)

	rep, err := report.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(1<<30), rep.Work)
	require.Len(t, rep.Rows, 5)
}

func TestConfigDefaults(t *testing.T) {
	out, err := execute(t, "config", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	require.Empty(t, out)

	out, err = execute(t, "config")
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
	require.Contains(t, out, "ModulusLength")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("mult-square-ratio = 1.0\nmemory-bound = 0\n"), 0o600))

	_, err := execute(t, "--config", path, "config")
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.MultSquareRatio)
	require.Zero(t, cfg.MemoryBound)
	require.Equal(t, config.DefaultModulusLength, cfg.ModulusLength)

	// flags take precedence over the file
	_, err = execute(t, "--config", path, "--modulus-length", "1024", "--memory-bound", "4096", "config")
	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.MultSquareRatio)
	require.Equal(t, 1024, cfg.ModulusLength)
	require.Equal(t, int64(4096), cfg.MemoryBound)
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, "--modulus-length", "0", "config")
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	_, err = execute(t, "--auto-memory", "1.5", "config")
	require.ErrorIs(t, err, shared.ErrInvalidConfig)

	_, err = execute(t, "--log-level", "loud", "config")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, fmt.Sprintf("%s (%s)", Version, Commit))
}

func TestOps(t *testing.T) {
	out, err := execute(t, "ops", "--work", "68719476736")
	require.NoError(t, err)
	require.Contains(t, out, "squarings:       S = 950512\n")
	require.Contains(t, out, "multiplications: M = 3258190800\n")
	require.Contains(t, out, "ratio: T/(M+S) =    21.085148\n")

	_, err = execute(t, "ops", "--block-size", "0")
	require.ErrorIs(t, err, shared.ErrDomain)
}
