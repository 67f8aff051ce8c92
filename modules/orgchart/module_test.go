package orgchart

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/application"
	"github.com/iota-uz/orgchart/pkg/configuration"
	"github.com/iota-uz/orgchart/pkg/eventbus"
)

func TestModule_Register(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)
	app := application.New(&application.ApplicationOptions{EventBus: bus})

	err := application.Load(app, NewModule(&ModuleOptions{
		OrgChart: configuration.OrgChartOptions{CacheEnabled: true, NotifyEnabled: true, SearchLimit: 10},
	}))
	require.NoError(t, err)

	require.Len(t, app.Controllers(), 1)
	require.Equal(t, "/orgchart/api", app.Controllers()[0].Key())
	svc := app.Service(services.ChartService{}).(*services.ChartService)
	require.True(t, svc.CacheEnabled())
	require.Equal(t, 2, bus.SubscribersCount())
	require.Equal(t, "orgchart", NewModule(nil).Name())
}

func TestModule_CacheNeedsNotify(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(nil),
		Logger:   logger,
	})

	err := application.Load(app, NewModule(&ModuleOptions{
		OrgChart: configuration.OrgChartOptions{CacheEnabled: true, SearchLimit: 10},
	}))
	require.NoError(t, err)

	svc := app.Service(services.ChartService{}).(*services.ChartService)
	require.False(t, svc.CacheEnabled())
	require.NotNil(t, hook.LastEntry())
	require.Contains(t, hook.LastEntry().Message, "snapshot cache disabled")
}
