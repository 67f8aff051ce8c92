package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/orgchart/presentation/mappers"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
)

func newSearchCmd() *cobra.Command {
	var (
		opts   sourceOptions
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search employees by name, title or email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return withCode(exitUsage, fmt.Errorf("--limit must not be negative"))
			}
			svc, err := openService(opts)
			if err != nil {
				return err
			}
			ctx := context.Background()
			hits, err := svc.Search(ctx, cliTenant, strings.Join(args, " "), limit)
			if err != nil {
				return classifyServiceError(err)
			}
			departments, err := svc.Departments(ctx, cliTenant)
			if err != nil {
				return classifyServiceError(err)
			}

			vm := mappers.SearchHitsToViewModel(hits, departments)
			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSONLine(out, vm); err != nil {
					return withCode(exitIO, err)
				}
				return nil
			}

			chart, err := svc.GetChart(ctx, cliTenant, services.ChartQuery{})
			if err != nil {
				return classifyServiceError(err)
			}
			names := make(map[uuid.UUID]string, chart.Stats.Employees)
			for _, row := range mappers.ChartToRows(chart, nil).Rows {
				if _, seen := names[row.ID]; !seen {
					names[row.ID] = row.Name
				}
			}
			for _, hit := range vm {
				path := make([]string, 0, len(hit.Path))
				for _, id := range hit.Path {
					if name, ok := names[id]; ok {
						path = append(path, name)
					} else {
						path = append(path, id.String())
					}
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", hit.Name, hit.Title, strings.Join(path, " > ")); err != nil {
					return withCode(exitIO, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "employee file (.csv, .json, .yaml)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of hits (0 uses the default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print hits as JSON")
	return cmd
}
