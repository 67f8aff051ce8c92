package services

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrTenantRequired   = errors.New("tenant_id is required")
)

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func (e *ServiceError) HTTPStatus() int { return e.Status }

func (e *ServiceError) ErrorCode() string { return e.Code }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func errNoTenant() *ServiceError {
	return newServiceError(http.StatusBadRequest, "ORGCHART_NO_TENANT", "tenant is not specified", ErrTenantRequired)
}
