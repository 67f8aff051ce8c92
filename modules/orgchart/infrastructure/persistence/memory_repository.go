package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
)

// MemoryEmployeeRepository serves a fixed employee set, e.g. one read by
// FileSource. Employees whose TenantID is nil belong to every tenant.
type MemoryEmployeeRepository struct {
	employees []domain.Employee
}

func NewMemoryEmployeeRepository(employees []domain.Employee) *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{employees: employees}
}

func (r *MemoryEmployeeRepository) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]domain.Employee, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantRequired
	}
	out := make([]domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if e.TenantID == uuid.Nil || e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

type MemoryDepartmentRepository struct {
	departments []domain.Department
}

func NewMemoryDepartmentRepository(departments []domain.Department) *MemoryDepartmentRepository {
	return &MemoryDepartmentRepository{departments: departments}
}

func (r *MemoryDepartmentRepository) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]domain.Department, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantRequired
	}
	return append([]domain.Department(nil), r.departments...), nil
}
