package services

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/pkg/composables"
	"github.com/iota-uz/orgchart/pkg/hierarchy"
)

var tracer = otel.Tracer("orgchart-services")

type EmployeeRepository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Employee, error)
}

type DepartmentRepository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Department, error)
}

type ChartQuery struct {
	// DepartmentID limits the chart to one department. Reports whose
	// manager sits elsewhere become roots.
	DepartmentID    *uuid.UUID
	IncludeInactive bool
	// FocusID returns only the subtree rooted at that employee.
	FocusID *uuid.UUID
}

type Stats struct {
	Employees   int `json:"employees"`
	Departments int `json:"departments"`
	Roots       int `json:"roots"`
	Levels      int `json:"levels"`
	Managers    int `json:"managers"`
}

type Chart struct {
	Roots       []*hierarchy.Node[domain.Employee]
	Departments []domain.Department
	Stats       Stats
	Report      hierarchy.Report
	GeneratedAt time.Time
}

type ChartServiceOptions struct {
	CacheEnabled bool
	// IncludeInactive is the default when a query does not ask for inactive employees.
	IncludeInactive bool
	SearchLimit     int
	// ReadTx loads each snapshot inside one read-only transaction. Needs a
	// pool in the request context.
	ReadTx bool
	Logger *logrus.Entry
	Now    func() time.Time
}

type ChartService struct {
	employees   EmployeeRepository
	departments DepartmentRepository
	opts        ChartServiceOptions
	cache       *snapshotCache
}

func NewChartService(employees EmployeeRepository, departments DepartmentRepository, opts ChartServiceOptions) *ChartService {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = 20
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		opts.Logger = logrus.NewEntry(l)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ChartService{
		employees:   employees,
		departments: departments,
		opts:        opts,
		cache:       newSnapshotCache(),
	}
}

func (s *ChartService) GetChart(ctx context.Context, tenantID uuid.UUID, q ChartQuery) (*Chart, error) {
	ctx, span := tracer.Start(ctx, "orgchart.GetChart", trace.WithAttributes(
		attribute.String("orgchart.tenant_id", tenantID.String()),
		attribute.Bool("orgchart.include_inactive", q.IncludeInactive),
	))
	defer span.End()

	chart, err := s.getChart(ctx, tenantID, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("orgchart.employees", chart.Stats.Employees),
		attribute.Int("orgchart.roots", chart.Stats.Roots),
	)
	return chart, nil
}

func (s *ChartService) getChart(ctx context.Context, tenantID uuid.UUID, q ChartQuery) (*Chart, error) {
	if tenantID == uuid.Nil {
		return nil, errNoTenant()
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	roots, report := s.assemble(tenantID, snap, q)
	if q.FocusID != nil {
		node, ok := hierarchy.Find(roots, q.FocusID.String())
		if !ok {
			return nil, newServiceError(http.StatusNotFound, "ORGCHART_EMPLOYEE_NOT_FOUND",
				"focus employee not found in chart", ErrEmployeeNotFound)
		}
		roots = []*hierarchy.Node[domain.Employee]{node}
	}

	return &Chart{
		Roots:       roots,
		Departments: snap.Departments,
		Stats:       computeStats(roots),
		Report:      report,
		GeneratedAt: s.opts.Now().UTC(),
	}, nil
}

func (s *ChartService) assemble(tenantID uuid.UUID, snap *snapshot, q ChartQuery) ([]*hierarchy.Node[domain.Employee], hierarchy.Report) {
	start := time.Now()
	roots, report := hierarchy.AssembleWithReport(domain.Records(snap.Employees), s.scope(q))
	orgChartAssembleSeconds.Observe(time.Since(start).Seconds())

	if !report.Empty() {
		recordAnomalies(len(report.DuplicateIDs), len(report.SelfReferences), len(report.Detached))
		s.opts.Logger.WithFields(logrus.Fields{
			"tenant_id":       tenantID.String(),
			"duplicate_ids":   report.DuplicateIDs,
			"self_references": report.SelfReferences,
			"detached":        report.Detached,
		}).Warn("orgchart: manager references are inconsistent")
	}
	return roots, report
}

// scope builds the working-set filter for q, or nil when every employee is kept.
func (s *ChartService) scope(q ChartQuery) hierarchy.Filter[domain.Employee] {
	var filters []hierarchy.Filter[domain.Employee]
	if !q.IncludeInactive && !s.opts.IncludeInactive {
		filters = append(filters, func(r hierarchy.Record[domain.Employee]) bool {
			return r.Payload.Active()
		})
	}
	if q.DepartmentID != nil {
		departmentID := *q.DepartmentID
		filters = append(filters, func(r hierarchy.Record[domain.Employee]) bool {
			return r.Payload.InDepartment(departmentID)
		})
	}
	switch len(filters) {
	case 0:
		return nil
	case 1:
		return filters[0]
	default:
		return hierarchy.And(filters...)
	}
}

func computeStats(roots []*hierarchy.Node[domain.Employee]) Stats {
	stats := Stats{Roots: len(roots), Levels: hierarchy.MaxDepth(roots)}
	departments := make(map[uuid.UUID]struct{})
	hierarchy.Walk(roots, func(n *hierarchy.Node[domain.Employee], _ int) bool {
		stats.Employees++
		if !n.IsLeaf() {
			stats.Managers++
		}
		if d := n.Payload().DepartmentID; d != nil {
			departments[*d] = struct{}{}
		}
		return true
	})
	stats.Departments = len(departments)
	return stats
}

func (s *ChartService) Departments(ctx context.Context, tenantID uuid.UUID) ([]domain.Department, error) {
	if tenantID == uuid.Nil {
		return nil, errNoTenant()
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return snap.Departments, nil
}

func (s *ChartService) snapshot(ctx context.Context, tenantID uuid.UUID) (*snapshot, error) {
	if s.opts.CacheEnabled {
		if snap, ok := s.cache.Get(tenantID); ok {
			recordCacheRequest(true)
			return snap, nil
		}
		recordCacheRequest(false)
	}

	load := func(ctx context.Context) (*snapshot, error) {
		employees, err := s.employees.ListByTenant(ctx, tenantID)
		if err != nil {
			return nil, errors.Wrap(err, "list employees")
		}
		departments, err := s.departments.ListByTenant(ctx, tenantID)
		if err != nil {
			return nil, errors.Wrap(err, "list departments")
		}
		return &snapshot{Employees: employees, Departments: departments, LoadedAt: s.opts.Now().UTC()}, nil
	}

	var snap *snapshot
	var err error
	if s.opts.ReadTx {
		snap, err = composables.InTxResult(ctx, load)
	} else {
		snap, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	if s.opts.CacheEnabled {
		s.cache.Set(tenantID, snap)
	}
	return snap, nil
}

// InvalidateTenant drops the cached snapshot of tenantID.
func (s *ChartService) InvalidateTenant(tenantID uuid.UUID, reason string) {
	if tenantID == uuid.Nil {
		return
	}
	recordCacheInvalidate(reason)
	if s.cache.InvalidateTenant(tenantID) {
		s.opts.Logger.WithFields(logrus.Fields{
			"tenant_id": tenantID.String(),
			"reason":    reason,
		}).Debug("orgchart: snapshot cache invalidated")
	}
}

// InvalidateAll drops the cached snapshots of every tenant.
func (s *ChartService) InvalidateAll(reason string) {
	recordCacheInvalidate(reason)
	if n := s.cache.Clear(); n > 0 {
		s.opts.Logger.WithFields(logrus.Fields{
			"tenants": n,
			"reason":  reason,
		}).Debug("orgchart: snapshot cache cleared")
	}
}

// CacheEnabled reports whether snapshots are kept between calls.
func (s *ChartService) CacheEnabled() bool {
	return s.opts.CacheEnabled
}

// OnEmployeesResync is subscribed on the event bus.
func (s *ChartService) OnEmployeesResync(e *domain.EmployeesResyncEvent) error {
	reason := domain.ReasonResync
	if e != nil && e.Reason != "" {
		reason = e.Reason
	}
	s.InvalidateAll(reason)
	return nil
}

// OnEmployeesChanged is subscribed on the event bus.
func (s *ChartService) OnEmployeesChanged(e *domain.EmployeesChangedEvent) error {
	if e == nil || e.TenantID == uuid.Nil {
		return errors.Wrap(ErrTenantRequired, "employees changed event")
	}
	s.InvalidateTenant(e.TenantID, e.Reason)
	return nil
}
