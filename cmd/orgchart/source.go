package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/modules/orgchart/infrastructure/persistence"
	"github.com/iota-uz/orgchart/modules/orgchart/services"
	"github.com/iota-uz/orgchart/pkg/logging"
)

// cliTenant scopes file-backed charts. Employees read from files carry no
// tenant and are visible to every tenant.
var cliTenant = uuid.NewSHA1(uuid.NameSpaceURL, []byte("orgchart-cli"))

type sourceOptions struct {
	input           string
	includeInactive bool
	verbose         bool
}

func openService(opts sourceOptions) (*services.ChartService, error) {
	if strings.TrimSpace(opts.input) == "" {
		return nil, withCode(exitUsage, fmt.Errorf("--input is required"))
	}
	employees, departments, err := persistence.NewFileSource(uuid.Nil).Load(opts.input)
	if err != nil {
		return nil, classifyLoadError(err)
	}

	logger := logging.Nop()
	if opts.verbose {
		logger = logging.ConsoleLogger(logrus.WarnLevel).WithField("component", "orgchart")
	}
	return services.NewChartService(
		persistence.NewMemoryEmployeeRepository(employees),
		persistence.NewMemoryDepartmentRepository(departments),
		services.ChartServiceOptions{IncludeInactive: opts.includeInactive, Logger: logger},
	), nil
}

func classifyLoadError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrUnsupportedFormat):
		return withCode(exitUsage, err)
	case errors.Is(err, persistence.ErrInvalidRecord), errors.Is(err, domain.ErrInvalidStatus):
		return withCode(exitValidation, err)
	default:
		return withCode(exitIO, err)
	}
}

func classifyServiceError(err error) error {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) && svcErr.Status < 500 {
		return withCode(exitValidation, err)
	}
	return withCode(exitIO, err)
}

func parseUUIDFlag(name, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("invalid --%s: %w", name, err))
	}
	return &id, nil
}
