package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/vdfcost/config"
)

// Version and Commit are set at build time with
// -ldflags "-X github.com/spacemeshos/vdfcost/cmd/vdfcost/cmd.Version=... -X github.com/spacemeshos/vdfcost/cmd/vdfcost/cmd.Commit=...".
var (
	Version = "0.0.0"
	Commit  = ""

	// cfg is the effective configuration, resolved before every command runs.
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "vdfcost",
	Short: "Estimate the cost of proving a verifiable delay function",
	Long: `vdfcost models the time a prover needs to produce a proof of sequential squaring,
searches the batch parameters that minimise it under a memory bound, and places
checkpoints so that proofs are computed while the evaluation is still running.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c

		logger, err = newLogger(flagValues.logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize zap logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	setFlags(rootCmd)
}
