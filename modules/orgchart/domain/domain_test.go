package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"":          StatusActive,
		"Active":    StatusActive,
		"inactive":  StatusInactive,
		" on_leave": StatusOnLeave,
		"on-leave":  StatusOnLeave,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseStatus("fired")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEmployee_Record(t *testing.T) {
	manager := uuid.New()
	e := Employee{ID: uuid.New(), ManagerID: &manager, FirstName: " Ada ", LastName: "Lovelace"}

	r := e.Record()
	require.Equal(t, e.ID.String(), r.ID)
	require.Equal(t, manager.String(), r.ParentID)
	require.Equal(t, "Ada Lovelace", r.Payload.FullName())

	nilManager := uuid.Nil
	e.ManagerID = &nilManager
	require.Empty(t, e.Record().ParentID)
	e.ManagerID = nil
	require.Empty(t, e.Record().ParentID)
}

func TestEmployee_Predicates(t *testing.T) {
	dept := uuid.New()
	e := Employee{Status: StatusOnLeave, DepartmentID: &dept}
	require.True(t, e.Active())
	require.True(t, e.InDepartment(dept))
	require.False(t, e.InDepartment(uuid.New()))

	e.Status = StatusInactive
	e.DepartmentID = nil
	require.False(t, e.Active())
	require.False(t, e.InDepartment(dept))
}

func TestDepartmentIndex(t *testing.T) {
	d := Department{ID: uuid.New(), Code: "ENG", Name: "Engineering"}
	idx := IndexDepartments([]Department{d})

	require.Equal(t, "Engineering", idx.NameOf(&d.ID))
	missing := uuid.New()
	require.Empty(t, idx.NameOf(&missing))
	require.Empty(t, idx.NameOf(nil))
}

func TestParseEmployeesChanged(t *testing.T) {
	tenant := uuid.New()

	e, err := ParseEmployeesChanged(tenant.String())
	require.NoError(t, err)
	require.Equal(t, tenant, e.TenantID)
	require.Equal(t, ReasonNotify, e.Reason)

	e, err = ParseEmployeesChanged(" " + tenant.String() + ":import ")
	require.NoError(t, err)
	require.Equal(t, "import", e.Reason)

	for _, bad := range []string{"", "nope", uuid.Nil.String()} {
		_, err := ParseEmployeesChanged(bad)
		require.ErrorIs(t, err, ErrInvalidEventPayload, bad)
	}
}
