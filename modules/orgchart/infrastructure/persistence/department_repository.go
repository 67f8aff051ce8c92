package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/pkg/composables"
)

type DepartmentRepository struct{}

func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Department, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantRequired
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, code, name
FROM departments
WHERE tenant_id = $1
ORDER BY name ASC, code ASC
`, pgUUID(tenantID))
	if err != nil {
		return nil, errors.Wrap(err, "query departments")
	}
	defer rows.Close()

	out := make([]domain.Department, 0, 16)
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Code, &d.Name); err != nil {
			return nil, errors.Wrap(err, "scan department")
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
