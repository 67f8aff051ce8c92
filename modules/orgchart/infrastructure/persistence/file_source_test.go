package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
)

const (
	ceoID  = "00000000-0000-0000-0000-000000000001"
	ctoID  = "00000000-0000-0000-0000-000000000002"
	devID  = "00000000-0000-0000-0000-000000000003"
	deptID = "10000000-0000-0000-0000-000000000001"
)

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.csv": FormatCSV, "b.JSON": FormatJSON, "c.yaml": FormatYAML, "d.yml": FormatYAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := FormatFromPath("e.xlsx")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileSource_CSV(t *testing.T) {
	tenant := uuid.New()
	data := strings.Join([]string{
		"ID,first_name,last_name,manager_id,department_id,title,status,display_order,extra",
		ceoID + ",Grace,Hopper,,," + "CEO,active,0,x",
		devID + ",Linus,Torvalds," + ctoID + "," + deptID + ",Dev,,2,y",
		ctoID + ",Alan,Turing," + ceoID + "," + deptID + ",CTO,on_leave,1,z",
	}, "\n")

	employees, departments, err := NewFileSource(tenant).Decode(strings.NewReader(data), FormatCSV)
	require.NoError(t, err)
	require.Empty(t, departments)
	require.Len(t, employees, 3)

	require.Equal(t, ceoID, employees[0].ID.String())
	require.Nil(t, employees[0].ManagerID)
	require.Equal(t, tenant, employees[0].TenantID)
	require.Equal(t, ctoID, employees[1].ManagerID.String())
	require.Equal(t, deptID, employees[1].DepartmentID.String())
	require.Equal(t, domain.StatusActive, employees[1].Status)
	require.Equal(t, 2, employees[1].DisplayOrder)
	require.Equal(t, domain.StatusOnLeave, employees[2].Status)
	require.Equal(t, "Alan Turing", employees[2].FullName())
}

func TestFileSource_CSVByteOrderMark(t *testing.T) {
	input := "\ufeffID,Manager_ID,First_Name\n" +
		ceoID + ",,Ada\n" +
		ctoID + "," + ceoID + ",Grace\n"

	employees, _, err := NewFileSource(uuid.Nil).Decode(strings.NewReader(input), FormatCSV)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.Equal(t, uuid.MustParse(ceoID), employees[0].ID)
	require.Equal(t, "Ada", employees[0].FirstName)
	require.NotNil(t, employees[1].ManagerID)
	require.Equal(t, uuid.MustParse(ceoID), *employees[1].ManagerID)
}

func TestFileSource_CSVErrors(t *testing.T) {
	src := NewFileSource(uuid.Nil)

	_, _, err := src.Decode(strings.NewReader("name\nx\n"), FormatCSV)
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, _, err = src.Decode(strings.NewReader("id,manager_id\n"+ceoID+",not-a-uuid\n"), FormatCSV)
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Contains(t, err.Error(), "employee 1")
	require.Contains(t, err.Error(), "manager_id")

	_, _, err = src.Decode(strings.NewReader("id,display_order\n"+ceoID+",first\n"), FormatCSV)
	require.ErrorIs(t, err, ErrInvalidRecord)

	employees, _, err := src.Decode(strings.NewReader(""), FormatCSV)
	require.NoError(t, err)
	require.Empty(t, employees)
}

func TestFileSource_JSON(t *testing.T) {
	doc := `{
  "departments": [{"id": "` + deptID + `", "code": "ENG", "name": "Engineering"}],
  "employees": [
    {"id": "` + ceoID + `", "first_name": "Grace", "last_name": "Hopper"},
    {"id": "` + ctoID + `", "manager_id": "` + ceoID + `", "department_id": "` + deptID + `", "status": "inactive"}
  ]
}`
	employees, departments, err := NewFileSource(uuid.Nil).Decode(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.Equal(t, domain.StatusInactive, employees[1].Status)
	require.Equal(t, []domain.Department{{ID: uuid.MustParse(deptID), Code: "ENG", Name: "Engineering"}}, departments)

	employees, _, err = NewFileSource(uuid.Nil).Decode(strings.NewReader(`[{"id":"`+devID+`"}]`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, employees, 1)

	_, _, err = NewFileSource(uuid.Nil).Decode(strings.NewReader(`[{"id":"nope"}]`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidRecord)

	_, _, err = NewFileSource(uuid.Nil).Decode(strings.NewReader(`{"departments":[{"code":"X"}]}`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Contains(t, err.Error(), "department 1")
}

func TestFileSource_YAML(t *testing.T) {
	doc := `
departments:
  - id: ` + deptID + `
    code: ENG
    name: Engineering
employees:
  - id: ` + ceoID + `
    first_name: Grace
    display_order: 1
  - id: ` + ctoID + `
    manager_id: ` + ceoID + `
`
	employees, departments, err := NewFileSource(uuid.Nil).Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.Len(t, departments, 1)
	require.Equal(t, 1, employees[0].DisplayOrder)
	require.Equal(t, ceoID, employees[1].ManagerID.String())

	list := "- id: " + ceoID + "\n- id: " + ctoID + "\n"
	employees, _, err = NewFileSource(uuid.Nil).Decode(strings.NewReader(list), FormatYAML)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	employees, _, err = NewFileSource(uuid.Nil).Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	require.Empty(t, employees)
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "staff.yml")
	require.NoError(t, os.WriteFile(path, []byte("- id: "+ceoID+"\n"), 0o644))

	employees, _, err := NewFileSource(uuid.Nil).Load(path)
	require.NoError(t, err)
	require.Len(t, employees, 1)

	_, _, err = NewFileSource(uuid.Nil).Load(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = NewFileSource(uuid.Nil).Load(filepath.Join(dir, "staff.txt"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
