package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules/orgchart/presentation/mappers"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/application"
	"github.com/iota-uz/orgchart/pkg/composables"
	"github.com/iota-uz/orgchart/pkg/httpapi"
	"github.com/iota-uz/orgchart/pkg/logging"
	"github.com/iota-uz/orgchart/pkg/middleware"
)

type ChartController struct {
	app       application.Application
	service   *services.ChartService
	apiPrefix string
}

func NewChartController(app application.Application) application.Controller {
	return &ChartController{
		app:       app,
		service:   app.Service(services.ChartService{}).(*services.ChartService),
		apiPrefix: "/orgchart/api",
	}
}

func (c *ChartController) Key() string {
	return c.apiPrefix
}

func (c *ChartController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.HandleFunc("/chart", instrumentAPI("chart", c.GetChart)).Methods(http.MethodGet)
	api.HandleFunc("/search", instrumentAPI("search", c.Search)).Methods(http.MethodGet)
	api.HandleFunc("/departments", instrumentAPI("departments", c.Departments)).Methods(http.MethodGet)
}

func (c *ChartController) logger(ctx context.Context) *logrus.Entry {
	fallback := c.app.Logger()
	if fallback == nil {
		fallback = logging.Nop().Logger
	}
	return middleware.UseLogger(ctx, fallback)
}

// tenantFrom prefers the tenant_id query parameter and falls back to the
// tenant stored in the request context.
func tenantFrom(ctx context.Context, raw string) uuid.UUID {
	if raw != "" {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil
		}
		return tenantID
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return uuid.Nil
	}
	return tenantID
}

func (c *ChartController) writeInvalid(w http.ResponseWriter, fields map[string]string) {
	_ = httpapi.WriteError(w, http.StatusBadRequest, "ORGCHART_INVALID_QUERY", "invalid query parameters", fields)
}

func (c *ChartController) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) || svcErr.Status >= http.StatusInternalServerError {
		c.logger(ctx).WithError(err).Error("orgchart: request failed")
	}
	_ = httpapi.WriteErr(w, err, "ORGCHART_INTERNAL")
}

func (c *ChartController) GetChart(w http.ResponseWriter, r *http.Request) {
	dto := chartQueryFromValues(r.URL.Query())
	if fields, ok := dto.Ok(); !ok {
		c.writeInvalid(w, fields)
		return
	}

	ctx := r.Context()
	chart, err := c.service.GetChart(ctx, tenantFrom(ctx, dto.TenantID), services.ChartQuery{
		DepartmentID:    optionalUUID(dto.DepartmentID),
		IncludeInactive: dto.includeInactive(),
		FocusID:         optionalUUID(dto.FocusID),
	})
	if err != nil {
		c.writeServiceError(ctx, w, err)
		return
	}

	if dto.Format == "rows" {
		_ = httpapi.WriteJSON(w, http.StatusOK, mappers.ChartToRows(chart, optionalUUID(dto.SelectedID)))
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.ChartToViewModel(chart, dto.expandSet()))
}

func (c *ChartController) Search(w http.ResponseWriter, r *http.Request) {
	dto, fields := searchQueryFromValues(r.URL.Query())
	if fields != nil {
		c.writeInvalid(w, fields)
		return
	}
	if fields, ok := dto.Ok(); !ok {
		c.writeInvalid(w, fields)
		return
	}

	ctx := r.Context()
	tenantID := tenantFrom(ctx, dto.TenantID)
	hits, err := c.service.Search(ctx, tenantID, dto.Q, dto.Limit)
	if err != nil {
		c.writeServiceError(ctx, w, err)
		return
	}
	departments, err := c.service.Departments(ctx, tenantID)
	if err != nil {
		c.writeServiceError(ctx, w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"hits": mappers.SearchHitsToViewModel(hits, departments),
	})
}

func (c *ChartController) Departments(w http.ResponseWriter, r *http.Request) {
	dto := &TenantQueryDTO{TenantID: idParam(r.URL.Query().Get("tenant_id"))}
	if fields, ok := dto.Ok(); !ok {
		c.writeInvalid(w, fields)
		return
	}

	ctx := r.Context()
	departments, err := c.service.Departments(ctx, tenantFrom(ctx, dto.TenantID))
	if err != nil {
		c.writeServiceError(ctx, w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"departments": mappers.DepartmentsToViewModel(departments),
	})
}
