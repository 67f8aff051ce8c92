package application

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/pkg/eventbus"
)

type greeter struct{ name string }

type stubController struct{ key string }

func (c *stubController) Register(r *mux.Router) {
	r.HandleFunc(c.key, func(w http.ResponseWriter, _ *http.Request) {}).Methods(http.MethodGet)
}
func (c *stubController) Key() string { return c.key }

type stubModule struct {
	name string
	err  error
}

func (m *stubModule) Register(app Application) error {
	if m.err != nil {
		return m.err
	}
	app.RegisterServices(&greeter{name: m.name})
	app.RegisterControllers(&stubController{key: "/" + m.name})
	return nil
}
func (m *stubModule) Name() string { return m.name }

func TestApplication_ServicesAndControllers(t *testing.T) {
	app := New(&ApplicationOptions{EventBus: eventbus.NewEventPublisher(nil)})

	require.NoError(t, Load(app, &stubModule{name: "orgchart"}))

	svc := app.Service(greeter{}).(*greeter)
	require.Equal(t, "orgchart", svc.name)
	require.Len(t, app.Controllers(), 1)
	require.Equal(t, "/orgchart", app.Controllers()[0].Key())
	require.NotNil(t, app.EventPublisher())
	require.Panics(t, func() { app.Service(struct{}{}) })
}

func TestLoad_StopsOnError(t *testing.T) {
	app := New(&ApplicationOptions{})
	boom := errors.New("boom")

	err := Load(app, &stubModule{name: "a", err: boom}, &stubModule{name: "b"})

	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "module a")
	require.Empty(t, app.Controllers())
}
