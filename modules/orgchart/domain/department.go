package domain

import "github.com/google/uuid"

type Department struct {
	ID   uuid.UUID
	Code string
	Name string
}

// DepartmentIndex maps department ids to departments.
type DepartmentIndex map[uuid.UUID]Department

func IndexDepartments(departments []Department) DepartmentIndex {
	idx := make(DepartmentIndex, len(departments))
	for _, d := range departments {
		idx[d.ID] = d
	}
	return idx
}

// NameOf returns the department name of id, or "" when unknown.
func (idx DepartmentIndex) NameOf(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return idx[*id].Name
}
