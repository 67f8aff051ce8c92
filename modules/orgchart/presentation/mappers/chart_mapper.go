package mappers

import (
	"github.com/google/uuid"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/modules/orgchart/presentation/viewmodels"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/hierarchy"
)

type chartNode = hierarchy.Node[domain.Employee]

// ChartToViewModel converts the forest into nested nodes. Roots and
// siblings keep the forest order. expanded marks nodes the caller has open.
func ChartToViewModel(chart *services.Chart, expanded map[uuid.UUID]struct{}) *viewmodels.OrgChart {
	if chart == nil {
		return &viewmodels.OrgChart{Nodes: []*viewmodels.OrgChartNode{}}
	}
	departments := domain.IndexDepartments(chart.Departments)

	out := &viewmodels.OrgChart{
		Nodes:       make([]*viewmodels.OrgChartNode, len(chart.Roots)),
		Stats:       statsToViewModel(chart.Stats),
		GeneratedAt: chart.GeneratedAt,
	}

	type pair struct {
		src *chartNode
		dst *viewmodels.OrgChartNode
	}
	// Explicit stack: charts can be deeper than is safe to recurse.
	stack := make([]pair, 0, len(chart.Roots))
	for i, root := range chart.Roots {
		out.Nodes[i] = toNode(root, departments, expanded)
		stack = append(stack, pair{src: root, dst: out.Nodes[i]})
	}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		for i, child := range cur.src.Children {
			cur.dst.Children[i] = toNode(child, departments, expanded)
			stack = append(stack, pair{src: child, dst: cur.dst.Children[i]})
		}
	}
	return out
}

func toNode(n *chartNode, departments domain.DepartmentIndex, expanded map[uuid.UUID]struct{}) *viewmodels.OrgChartNode {
	e := n.Payload()
	_, open := expanded[e.ID]
	return &viewmodels.OrgChartNode{
		ID:            e.ID,
		Name:          e.FullName(),
		Title:         e.Title,
		Department:    departments.NameOf(e.DepartmentID),
		Email:         e.Email,
		Phone:         e.Phone,
		Status:        string(e.Status),
		ManagerID:     e.ManagerID,
		DirectReports: len(n.Children),
		Expanded:      open,
		Children:      make([]*viewmodels.OrgChartNode, len(n.Children)),
	}
}

// ChartToRows flattens the forest in pre-order.
func ChartToRows(chart *services.Chart, selected *uuid.UUID) *viewmodels.OrgTreeRows {
	if chart == nil {
		return &viewmodels.OrgTreeRows{Rows: []viewmodels.OrgTreeRow{}}
	}
	departments := domain.IndexDepartments(chart.Departments)
	entries := hierarchy.Flatten(chart.Roots)

	rows := make([]viewmodels.OrgTreeRow, 0, len(entries))
	for _, entry := range entries {
		e := entry.Node.Payload()
		var parentID *uuid.UUID
		if id, err := uuid.Parse(entry.ParentID); err == nil {
			parentID = &id
		}
		rows = append(rows, viewmodels.OrgTreeRow{
			ID:            e.ID,
			ParentID:      parentID,
			Name:          e.FullName(),
			Title:         e.Title,
			Department:    departments.NameOf(e.DepartmentID),
			Depth:         entry.Depth,
			DirectReports: len(entry.Node.Children),
			Selected:      selected != nil && *selected == e.ID,
		})
	}
	return &viewmodels.OrgTreeRows{
		Rows:        rows,
		Stats:       statsToViewModel(chart.Stats),
		GeneratedAt: chart.GeneratedAt,
	}
}

func statsToViewModel(s services.Stats) viewmodels.OrgChartStats {
	return viewmodels.OrgChartStats{
		Employees:   s.Employees,
		Departments: s.Departments,
		Roots:       s.Roots,
		Levels:      s.Levels,
		Managers:    s.Managers,
	}
}

func SearchHitsToViewModel(hits []services.SearchHit, departments []domain.Department) []viewmodels.SearchHit {
	idx := domain.IndexDepartments(departments)
	out := make([]viewmodels.SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, viewmodels.SearchHit{
			ID:         h.Employee.ID,
			Name:       h.Employee.FullName(),
			Title:      h.Employee.Title,
			Department: idx.NameOf(h.Employee.DepartmentID),
			Path:       h.Path,
		})
	}
	return out
}

func DepartmentsToViewModel(departments []domain.Department) []viewmodels.Department {
	out := make([]viewmodels.Department, 0, len(departments))
	for _, d := range departments {
		out = append(out, viewmodels.Department{ID: d.ID, Code: d.Code, Name: d.Name})
	}
	return out
}
