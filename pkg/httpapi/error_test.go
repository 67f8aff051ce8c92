package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type notFound struct{}

func (notFound) Error() string     { return "employee not found" }
func (notFound) HTTPStatus() int   { return http.StatusNotFound }
func (notFound) ErrorCode() string { return "ORGCHART_EMPLOYEE_NOT_FOUND" }

func decode(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteError(rec, http.StatusBadRequest, "BAD", "bad input", map[string]string{"field": "q"}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decode(t, rec)
	require.Equal(t, "BAD", env.Code)
	require.Equal(t, "q", env.Meta["field"])
}

func TestWriteErr(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteErr(rec, fmt.Errorf("wrapped: %w", notFound{}), "FALLBACK"))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "ORGCHART_EMPLOYEE_NOT_FOUND", decode(t, rec).Code)

	rec = httptest.NewRecorder()
	require.NoError(t, WriteErr(rec, errors.New("db down"), "FALLBACK"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	require.Equal(t, "FALLBACK", env.Code)
	require.Equal(t, "internal error", env.Message)
}

func TestWriteJSON_NilWriterAndPayload(t *testing.T) {
	require.NoError(t, WriteJSON(nil, http.StatusOK, map[string]string{"a": "b"}))

	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusNoContent, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}
