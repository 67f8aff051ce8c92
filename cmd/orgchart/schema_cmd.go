package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/orgchart/infrastructure/persistence"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the PostgreSQL schema, including the change notification trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Fprint(cmd.OutOrStdout(), persistence.SchemaSQL); err != nil {
				return withCode(exitIO, err)
			}
			return nil
		},
	}
}
