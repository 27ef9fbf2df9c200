package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/optimizer"
)

var optimizeFlags struct {
	work    uint64
	rounds  uint
	workers int
}

// optimizeCmd represents the optimize command.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the batch parameters minimising the cost of a single proof",
	Long: `Sweeps the batch parameter kappa and reports the cheapest (gamma, kappa) pair for
the given amount of work. With --hybrid-rounds the hybrid prover is optimized instead,
which first halves the exponent the given number of times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []optimizer.OptionFunc{
			optimizer.WithLogger(logger),
			optimizer.WithWorkers(optimizeFlags.workers),
		}

		hybrid := cmd.Flags().Changed("hybrid-rounds")

		var (
			p   optimizer.Params
			err error
		)
		if hybrid {
			p, err = optimizer.OptimizeHybrid(optimizeFlags.work, optimizeFlags.rounds, cfg, opts...)
		} else {
			p, err = optimizer.Optimize(optimizeFlags.work, cfg, opts...)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "T:        %d\n", optimizeFlags.work)
		if hybrid {
			fmt.Fprintf(out, "rounds:   %d\n", optimizeFlags.rounds)
		}
		fmt.Fprintf(out, "kappa:    %d\n", p.Kappa)
		fmt.Fprintf(out, "gamma:    %d\n", p.Gamma)
		fmt.Fprintf(out, "cost:     %d\n", p.Cost)
		fmt.Fprintf(out, "overhead: %.4f%%\n", 100*float64(p.Cost)/float64(optimizeFlags.work))
		fmt.Fprintf(out, "speedup:  %.2fx\n", p.Speedup(optimizeFlags.work))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().Uint64Var(&optimizeFlags.work, "work", config.DefaultWork, "number of sequential squarings to prove")
	optimizeCmd.Flags().UintVar(&optimizeFlags.rounds, "hybrid-rounds", 0, "optimize the hybrid prover with this many halving rounds")
	optimizeCmd.Flags().IntVar(&optimizeFlags.workers, "workers", 1, "number of batch parameters evaluated concurrently")
}
