package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fieldservice",
	Short:         "Field-service orders, technician routes and status history",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// ExecuteContext runs the CLI; cancelling ctx stops the serve command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
