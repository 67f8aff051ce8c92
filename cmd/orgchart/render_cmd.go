package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/orgchart/presentation/mappers"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
)

type renderOptions struct {
	source     sourceOptions
	department string
	focus      string
	format     string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the org chart read from a CSV, JSON or YAML file",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "text", "json", "rows":
				return nil
			default:
				return withCode(exitUsage, fmt.Errorf("invalid --format %q: want text, json or rows", opts.format))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source.input, "input", "", "employee file (.csv, .json, .yaml)")
	cmd.Flags().BoolVar(&opts.source.includeInactive, "include-inactive", false, "include inactive employees")
	cmd.Flags().BoolVar(&opts.source.verbose, "verbose", false, "log reference anomalies to stderr")
	cmd.Flags().StringVar(&opts.department, "department", "", "limit the chart to one department id")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "print only the subtree of this employee id")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json or rows")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	department, err := parseUUIDFlag("department", opts.department)
	if err != nil {
		return err
	}
	focus, err := parseUUIDFlag("focus", opts.focus)
	if err != nil {
		return err
	}
	svc, err := openService(opts.source)
	if err != nil {
		return err
	}

	chart, err := svc.GetChart(context.Background(), cliTenant, services.ChartQuery{
		DepartmentID:    department,
		IncludeInactive: opts.source.includeInactive,
		FocusID:         focus,
	})
	if err != nil {
		return classifyServiceError(err)
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		err = writeJSONLine(out, mappers.ChartToViewModel(chart, nil))
	case "rows":
		err = writeJSONLine(out, mappers.ChartToRows(chart, focus))
	default:
		err = writeTree(out, mappers.ChartToRows(chart, nil).Rows)
	}
	if err != nil {
		return withCode(exitIO, err)
	}
	return nil
}
