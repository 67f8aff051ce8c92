package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/orgchart/services"
)

type statsOutput struct {
	Stats          services.Stats `json:"stats"`
	DuplicateIDs   []string       `json:"duplicate_ids"`
	SelfReferences []string       `json:"self_references"`
	Detached       []string       `json:"detached"`
}

func newStatsCmd() *cobra.Command {
	var opts sourceOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the chart and report broken manager references",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(opts)
			if err != nil {
				return err
			}
			chart, err := svc.GetChart(context.Background(), cliTenant, services.ChartQuery{
				IncludeInactive: opts.includeInactive,
			})
			if err != nil {
				return classifyServiceError(err)
			}
			out := statsOutput{
				Stats:          chart.Stats,
				DuplicateIDs:   nonNil(chart.Report.DuplicateIDs),
				SelfReferences: nonNil(chart.Report.SelfReferences),
				Detached:       nonNil(chart.Report.Detached),
			}
			if err := writeJSONLine(cmd.OutOrStdout(), out); err != nil {
				return withCode(exitIO, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "employee file (.csv, .json, .yaml)")
	cmd.Flags().BoolVar(&opts.includeInactive, "include-inactive", false, "include inactive employees")
	return cmd
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
