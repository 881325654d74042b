package main

import (
	"fmt"
	"os"

	"placementhub/internal/config"
	"placementhub/internal/logger"

	"github.com/spf13/cobra"
)

var cfg *config.Config

func main() {
	root := &cobra.Command{
		Use:   "placementhub",
		Short: "Campus placement platform backend",
		Long: `placementhub serves the student, college and company portals of the
placement platform: profiles and rosters, job postings and applications,
resume and interview practice tools, placement analytics, NEP 2020
compliance and verifiable certificates.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return logger.Init(cfg.Production())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), trainCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
