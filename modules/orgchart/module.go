package orgchart

import (
	"github.com/iota-uz/orgchart/modules/orgchart/handlers"
	"github.com/iota-uz/orgchart/modules/orgchart/infrastructure/persistence"
	"github.com/iota-uz/orgchart/modules/orgchart/presentation/controllers"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/application"
	"github.com/iota-uz/orgchart/pkg/configuration"
)

type ModuleOptions struct {
	OrgChart configuration.OrgChartOptions
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	logger := app.Logger()
	// Snapshots are only invalidated by change notifications.
	chartOpts := services.ChartServiceOptions{
		CacheEnabled:    m.options.OrgChart.CacheEnabled && m.options.OrgChart.NotifyEnabled,
		IncludeInactive: m.options.OrgChart.IncludeInactive,
		SearchLimit:     m.options.OrgChart.SearchLimit,
		ReadTx:          app.DB() != nil,
	}
	if logger != nil {
		chartOpts.Logger = logger.WithField("component", "orgchart")
		if m.options.OrgChart.CacheEnabled && !chartOpts.CacheEnabled {
			chartOpts.Logger.Warn("orgchart: snapshot cache disabled because ORGCHART_NOTIFY_ENABLED is off")
		}
	}

	app.RegisterServices(
		services.NewChartService(
			persistence.NewEmployeeRepository(),
			persistence.NewDepartmentRepository(),
			chartOpts,
		),
	)

	app.RegisterControllers(
		controllers.NewChartController(app),
	)

	if app.EventPublisher() != nil {
		handlers.RegisterEventHandlers(app)
	}
	return nil
}

func (m *Module) Name() string {
	return "orgchart"
}
