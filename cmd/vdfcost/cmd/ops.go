package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/cost"
)

var opsFlags struct {
	work                uint64
	blockSize           uint64
	blocksPerCheckpoint uint64
}

// opsCmd represents the ops command.
var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Count the squarings and multiplications of the block prover",
	Long: `Counts the group operations of a prover that stores a checkpoint every
block-size*blocks-per-checkpoint squarings and folds them through 2^block-size buckets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := cost.BlockProver(opsFlags.work, opsFlags.blockSize, opsFlags.blocksPerCheckpoint)
		if err != nil {
			return err
		}
		logger.Debug("counted block prover operations",
			zap.Uint64("work", opsFlags.work),
			zap.Uint64("squarings", ops.Squarings),
			zap.Uint64("multiplications", ops.Multiplications),
		)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "T:                  %d\n", opsFlags.work)
		fmt.Fprintf(out, "squarings:       S = %d\n", ops.Squarings)
		fmt.Fprintf(out, "multiplications: M = %d\n", ops.Multiplications)
		fmt.Fprintf(out, "cost:               %d\n", ops.Cost(cfg))
		fmt.Fprintf(out, "ratio: T/(M+S) =    %f\n", ops.Speedup(opsFlags.work))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)

	opsCmd.Flags().Uint64Var(&opsFlags.work, "work", config.DefaultWork, "number of sequential squarings to prove")
	opsCmd.Flags().Uint64Var(&opsFlags.blockSize, "block-size", 22, "size of a block, in bits")
	opsCmd.Flags().Uint64Var(&opsFlags.blocksPerCheckpoint, "blocks-per-checkpoint", 16, "number of blocks per stored checkpoint")
}
