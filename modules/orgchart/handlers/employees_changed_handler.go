package handlers

import (
	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/application"
)

type EmployeesChangedHandler struct {
	chart *services.ChartService
}

func RegisterEventHandlers(app application.Application) {
	handler := &EmployeesChangedHandler{
		chart: app.Service(services.ChartService{}).(*services.ChartService),
	}
	app.EventPublisher().Subscribe(handler.onEmployeesChanged)
	app.EventPublisher().Subscribe(handler.onEmployeesResync)
}

func (h *EmployeesChangedHandler) onEmployeesChanged(ev *domain.EmployeesChangedEvent) error {
	if h == nil || h.chart == nil {
		return nil
	}
	return h.chart.OnEmployeesChanged(ev)
}

func (h *EmployeesChangedHandler) onEmployeesResync(ev *domain.EmployeesResyncEvent) error {
	if h == nil || h.chart == nil {
		return nil
	}
	return h.chart.OnEmployeesResync(ev)
}
