package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// CodedError is implemented by errors that know their HTTP status and
// machine-readable code.
type CodedError interface {
	error
	HTTPStatus() int
	ErrorCode() string
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// WriteErr maps err to an envelope. Errors that are not CodedError become a
// 500 with the given fallback code and a generic message.
func WriteErr(w http.ResponseWriter, err error, fallbackCode string) error {
	var coded CodedError
	if errors.As(err, &coded) {
		return WriteError(w, coded.HTTPStatus(), coded.ErrorCode(), coded.Error(), nil)
	}
	return WriteError(w, http.StatusInternalServerError, fallbackCode, "internal error", nil)
}
