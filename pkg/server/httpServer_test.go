package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/pkg/application"
)

type pingController struct{}

func (pingController) Key() string { return "/ping" }

func (pingController) Register(r *mux.Router) {
	r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("pong", 512)))
	}).Methods(http.MethodGet)
}

func tagging(tag string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tag", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func newServer() *HTTPServer {
	app := application.New(&application.ApplicationOptions{})
	app.RegisterControllers(pingController{})
	app.RegisterMiddleware(tagging("outer"))
	return NewHTTPServer(app, nil, nil)
}

func TestRouter_RoutesAndMiddleware(t *testing.T) {
	r := newServer().Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "outer", rec.Header().Get("X-Tag"))
}

func TestRouter_FallbacksRunMiddleware(t *testing.T) {
	r := newServer().Router()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "outer", rec.Header().Get("X-Tag"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "outer", rec.Header().Get("X-Tag"))
}

func TestHandler_Gzip(t *testing.T) {
	h := newServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "pongpong"))
}
