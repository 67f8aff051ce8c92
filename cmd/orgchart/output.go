package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iota-uz/orgchart/modules/orgchart/presentation/viewmodels"
)

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeTree prints one row per line, indented two spaces per level.
func writeTree(w io.Writer, rows []viewmodels.OrgTreeRow) error {
	for _, row := range rows {
		line := strings.Repeat("  ", row.Depth) + row.Name
		if row.Title != "" {
			line += " (" + row.Title + ")"
		}
		if row.Department != "" {
			line += " [" + row.Department + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
