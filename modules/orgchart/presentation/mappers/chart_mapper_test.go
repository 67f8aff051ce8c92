package mappers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/hierarchy"
)

var (
	rootID  = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	aID     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	a1ID    = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	bID     = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	orphan  = uuid.MustParse("00000000-0000-0000-0000-000000000005")
	missing = uuid.MustParse("00000000-0000-0000-0000-000000000099")
	deptID  = uuid.MustParse("10000000-0000-0000-0000-000000000001")
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func testChart() *services.Chart {
	employees := []domain.Employee{
		{ID: bID, ManagerID: ptr(rootID), FirstName: "B", Status: domain.StatusActive},
		{ID: a1ID, ManagerID: ptr(aID), FirstName: "A1", Status: domain.StatusOnLeave},
		{ID: rootID, FirstName: "Root", LastName: "User", Title: "CEO", DepartmentID: ptr(deptID), Status: domain.StatusActive},
		{ID: aID, ManagerID: ptr(rootID), FirstName: "A", Status: domain.StatusActive},
		{ID: orphan, ManagerID: ptr(missing), FirstName: "Orphan", Status: domain.StatusActive},
	}
	roots := hierarchy.Assemble(domain.Records(employees), nil)
	return &services.Chart{
		Roots:       roots,
		Departments: []domain.Department{{ID: deptID, Code: "EXEC", Name: "Executive"}},
		Stats:       services.Stats{Employees: 5, Departments: 1, Roots: 2, Levels: 3, Managers: 2},
		GeneratedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestChartToViewModel_PreservesForestOrder(t *testing.T) {
	vm := ChartToViewModel(testChart(), map[uuid.UUID]struct{}{rootID: {}})

	require.Len(t, vm.Nodes, 2)
	root := vm.Nodes[0]
	require.Equal(t, rootID, root.ID)
	require.Equal(t, "Root User", root.Name)
	require.Equal(t, "Executive", root.Department)
	require.True(t, root.Expanded)
	require.Nil(t, root.ManagerID)
	require.Equal(t, 2, root.DirectReports)

	// Input order B before A is kept; no re-sorting by name.
	require.Equal(t, bID, root.Children[0].ID)
	require.Equal(t, aID, root.Children[1].ID)
	require.False(t, root.Children[1].Expanded)
	require.Equal(t, a1ID, root.Children[1].Children[0].ID)
	require.Equal(t, "on_leave", root.Children[1].Children[0].Status)
	require.NotNil(t, root.Children[0].Children)
	require.Empty(t, root.Children[0].Children)

	require.Equal(t, orphan, vm.Nodes[1].ID)
	require.Equal(t, missing, *vm.Nodes[1].ManagerID)

	require.Equal(t, 5, vm.Stats.Employees)
	require.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), vm.GeneratedAt)
}

func TestChartToRows_PreOrderWithForestParents(t *testing.T) {
	rows := ChartToRows(testChart(), ptr(a1ID))

	got := make([]uuid.UUID, 0, len(rows.Rows))
	for _, r := range rows.Rows {
		got = append(got, r.ID)
	}
	require.Equal(t, []uuid.UUID{rootID, bID, aID, a1ID, orphan}, got)

	require.Nil(t, rows.Rows[0].ParentID)
	require.Equal(t, rootID, *rows.Rows[1].ParentID)
	require.Equal(t, 2, rows.Rows[3].Depth)
	require.True(t, rows.Rows[3].Selected)
	require.False(t, rows.Rows[0].Selected)
	// The orphan's manager is outside the chart, so it has no row parent.
	require.Nil(t, rows.Rows[4].ParentID)
	require.Equal(t, 0, rows.Rows[4].Depth)
}

func TestMappers_NilChart(t *testing.T) {
	require.Empty(t, ChartToViewModel(nil, nil).Nodes)
	require.Empty(t, ChartToRows(nil, nil).Rows)
}

func TestChartToViewModel_DeepChain(t *testing.T) {
	const depth = 20000
	employees := make([]domain.Employee, depth)
	for i := range employees {
		employees[i] = domain.Employee{ID: uuid.New()}
		if i > 0 {
			employees[i].ManagerID = ptr(employees[i-1].ID)
		}
	}
	chart := &services.Chart{Roots: hierarchy.Assemble(domain.Records(employees), nil)}

	vm := ChartToViewModel(chart, nil)
	n := vm.Nodes[0]
	levels := 1
	for len(n.Children) > 0 {
		n = n.Children[0]
		levels++
	}
	require.Equal(t, depth, levels)
}

func TestSearchAndDepartmentMappers(t *testing.T) {
	departments := []domain.Department{{ID: deptID, Code: "EXEC", Name: "Executive"}}
	hits := SearchHitsToViewModel([]services.SearchHit{{
		Employee: domain.Employee{ID: rootID, FirstName: "Root", DepartmentID: ptr(deptID)},
		Path:     []uuid.UUID{rootID},
	}}, departments)

	require.Len(t, hits, 1)
	require.Equal(t, "Root", hits[0].Name)
	require.Equal(t, "Executive", hits[0].Department)
	require.Equal(t, []uuid.UUID{rootID}, hits[0].Path)

	vm := DepartmentsToViewModel(departments)
	require.Equal(t, "EXEC", vm[0].Code)
	require.NotNil(t, DepartmentsToViewModel(nil))
}
