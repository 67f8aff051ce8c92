package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orgchart",
		Short:         "Render and inspect org charts from employee exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
