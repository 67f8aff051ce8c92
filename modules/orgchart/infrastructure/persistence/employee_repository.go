package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/pkg/composables"
)

var ErrTenantRequired = errors.New("tenant id is required")

type EmployeeRepository struct{}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{}
}

// ListByTenant returns every employee of the tenant in display order. The
// order is stable so repeated charts come out identical.
func (r *EmployeeRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Employee, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantRequired
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT
	e.id,
	e.manager_id,
	e.department_id,
	e.first_name,
	e.last_name,
	COALESCE(e.title, ''),
	COALESCE(e.email, ''),
	COALESCE(e.phone, ''),
	e.status,
	e.display_order
FROM employees e
WHERE e.tenant_id = $1
ORDER BY e.display_order ASC, e.last_name ASC, e.first_name ASC, e.id ASC
`, pgUUID(tenantID))
	if err != nil {
		return nil, errors.Wrap(err, "query employees")
	}
	defer rows.Close()

	out := make([]domain.Employee, 0, 64)
	for rows.Next() {
		e := domain.Employee{TenantID: tenantID}
		var manager, department pgtype.UUID
		var status string
		var displayOrder int32
		if err := rows.Scan(
			&e.ID, &manager, &department,
			&e.FirstName, &e.LastName, &e.Title, &e.Email, &e.Phone,
			&status, &displayOrder,
		); err != nil {
			return nil, errors.Wrap(err, "scan employee")
		}
		e.ManagerID = fromPgUUID(manager)
		e.DepartmentID = fromPgUUID(department)
		e.DisplayOrder = int(displayOrder)
		if e.Status, err = domain.ParseStatus(status); err != nil {
			return nil, errors.Wrapf(err, "employee %s", e.ID)
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func fromPgUUID(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}
