// Package domain holds the org chart entities.
package domain

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/orgchart/pkg/hierarchy"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

var ErrInvalidStatus = errors.New("invalid employee status")

// ParseStatus accepts the stored spelling case-insensitively. Empty means active.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusOnLeave, "on-leave":
		return StatusOnLeave, nil
	default:
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
}

type Employee struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	ManagerID    *uuid.UUID
	DepartmentID *uuid.UUID
	FirstName    string
	LastName     string
	Title        string
	Email        string
	Phone        string
	Status       Status
	DisplayOrder int
}

func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

// Active reports whether the employee counts as current staff. Employees on
// leave still hold their position.
func (e Employee) Active() bool {
	return e.Status != StatusInactive
}

func (e Employee) InDepartment(departmentID uuid.UUID) bool {
	return e.DepartmentID != nil && *e.DepartmentID == departmentID
}

// Record converts the employee into an assembler record keyed by its uuid.
func (e Employee) Record() hierarchy.Record[Employee] {
	parent := ""
	if e.ManagerID != nil && *e.ManagerID != uuid.Nil {
		parent = e.ManagerID.String()
	}
	return hierarchy.Record[Employee]{
		ID:       e.ID.String(),
		ParentID: parent,
		Payload:  e,
	}
}

func Records(employees []Employee) []hierarchy.Record[Employee] {
	out := make([]hierarchy.Record[Employee], len(employees))
	for i, e := range employees {
		out[i] = e.Record()
	}
	return out
}
