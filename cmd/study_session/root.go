package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "study_session",
		Short: "Generate and self-review multiple-choice quizzes from lecture notes",
		Long: "study_session drafts a 3-question quiz from lecture notes, has a reviewer model " +
			"critique it, and revises it until the reviewer approves or the iteration budget runs out.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (defaults to ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(newRunCmd())
	return rootCmd
}
