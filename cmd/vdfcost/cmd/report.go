package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/vdfcost/config"
	"github.com/spacemeshos/vdfcost/report"
)

var reportFlags struct {
	work        uint64
	rounds      int
	checkpoints int
	workers     int
	out         string
}

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare proof sizes and overheads of hybrid and iterated provers",
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Generate(cmd.Context(), reportFlags.work, cfg,
			report.WithLogger(logger),
			report.WithRounds(reportFlags.rounds),
			report.WithCheckpoints(reportFlags.checkpoints),
			report.WithWorkers(reportFlags.workers),
		)
		if err != nil {
			return err
		}

		rep.Render(cmd.OutOrStdout())

		if reportFlags.out != "" {
			if err := report.Save(reportFlags.out, rep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", reportFlags.out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Uint64Var(&reportFlags.work, "work", config.DefaultWork, "number of sequential squarings to prove")
	reportCmd.Flags().IntVar(&reportFlags.rounds, "rounds", report.DefaultRounds, "list hybrid provers with 0 to rounds-1 halving rounds")
	reportCmd.Flags().IntVar(&reportFlags.checkpoints, "checkpoints", report.DefaultCheckpoints, "list iterated provers with 1 to checkpoints checkpoints")
	reportCmd.Flags().IntVar(&reportFlags.workers, "workers", runtime.NumCPU(), "number of rows computed concurrently")
	reportCmd.Flags().StringVar(&reportFlags.out, "out", "", "also write the report as JSON to this file")
}
