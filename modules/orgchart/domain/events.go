package domain

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

const (
	ReasonNotify = "notify"
	ReasonManual = "manual"
	ReasonResync = "resync"
)

var ErrInvalidEventPayload = errors.New("invalid employees changed payload")

// EmployeesChangedEvent signals that a tenant's employee set changed.
type EmployeesChangedEvent struct {
	TenantID uuid.UUID
	Reason   string
}

// EmployeesResyncEvent signals that changes may have been missed for every
// tenant, e.g. while the change listener was disconnected.
type EmployeesResyncEvent struct {
	Reason string
}

// ParseEmployeesChanged decodes a NOTIFY payload of the form "<tenant uuid>"
// or "<tenant uuid>:<reason>".
func ParseEmployeesChanged(payload string) (*EmployeesChangedEvent, error) {
	raw, reason, _ := strings.Cut(strings.TrimSpace(payload), ":")
	tenantID, err := uuid.Parse(raw)
	if err != nil || tenantID == uuid.Nil {
		return nil, errors.Wrapf(ErrInvalidEventPayload, "%q", payload)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = ReasonNotify
	}
	return &EmployeesChangedEvent{TenantID: tenantID, Reason: reason}, nil
}
