package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/vdfcost/checkpoint"
	"github.com/spacemeshos/vdfcost/config"
)

var checkpointsFlags struct {
	work           uint64
	count          int
	maxEvaluations int
}

// checkpointsCmd represents the checkpoints command.
var checkpointsCmd = &cobra.Command{
	Use:   "checkpoints",
	Short: "Place checkpoints to minimise the prover overhead",
	Long: `Searches the first checkpoint so that the proofs of all segments complete together
with the evaluation, and reports the overhead of the last proof.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := checkpoint.Search(checkpointsFlags.work, checkpointsFlags.count, cfg,
			checkpoint.WithLogger(logger),
			checkpoint.WithMaxEvaluations(checkpointsFlags.maxEvaluations),
		)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "T:           %d\n", checkpointsFlags.work)
		fmt.Fprintf(out, "schedule:    %v\n", res.Schedule)
		fmt.Fprintf(out, "positions:   %v\n", res.Positions())
		fmt.Fprintf(out, "sum:         %d\n", res.Sum())
		fmt.Fprintf(out, "overhead:    %d (%.4f%%)\n", res.Overhead, 100*res.OverheadFraction)
		fmt.Fprintf(out, "evaluations: %d\n", res.Evaluations)
		return nil
	},
}

var scheduleFlags struct {
	first uint64
	count int
}

// scheduleCmd represents the schedule command.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the checkpoint schedule that starts at a given checkpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := checkpoint.Find(scheduleFlags.first, scheduleFlags.count, cfg, checkpoint.WithLogger(logger))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var total uint64
		for i, d := range schedule {
			total += d
			fmt.Fprintf(out, "%d\t%d\t%d\n", i, d, total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkpointsCmd)
	rootCmd.AddCommand(scheduleCmd)

	checkpointsCmd.Flags().Uint64Var(&checkpointsFlags.work, "work", config.DefaultWork, "number of sequential squarings to prove")
	checkpointsCmd.Flags().IntVar(&checkpointsFlags.count, "count", 2, "number of checkpoints")
	checkpointsCmd.Flags().IntVar(&checkpointsFlags.maxEvaluations, "max-evaluations", checkpoint.DefaultMaxEvaluations,
		"number of schedules evaluated before the search gives up")

	scheduleCmd.Flags().Uint64Var(&scheduleFlags.first, "first", config.DefaultWork/2, "first checkpoint")
	scheduleCmd.Flags().IntVar(&scheduleFlags.count, "count", 2, "number of checkpoints")
}
