package controllers

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validationErrors maps query parameter names to the failed rule.
func validationErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["query"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[fe.Field()] = msg
	}
	return out
}

type ChartQueryDTO struct {
	TenantID        string   `query:"tenant_id" validate:"omitempty,uuid"`
	DepartmentID    string   `query:"department_id" validate:"omitempty,uuid"`
	FocusID         string   `query:"focus_id" validate:"omitempty,uuid"`
	SelectedID      string   `query:"selected_id" validate:"omitempty,uuid"`
	IncludeInactive string   `query:"include_inactive" validate:"omitempty,oneof=true false 1 0"`
	Expand          []string `query:"expand" validate:"dive,uuid"`
	Format          string   `query:"format" validate:"omitempty,oneof=tree rows"`
}

// idParam normalizes a uuid query value. The validator's uuid rule only
// accepts lowercase hex.
func idParam(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func chartQueryFromValues(v url.Values) *ChartQueryDTO {
	d := &ChartQueryDTO{
		TenantID:        idParam(v.Get("tenant_id")),
		DepartmentID:    idParam(v.Get("department_id")),
		FocusID:         idParam(v.Get("focus_id")),
		SelectedID:      idParam(v.Get("selected_id")),
		IncludeInactive: strings.ToLower(strings.TrimSpace(v.Get("include_inactive"))),
		Format:          strings.ToLower(strings.TrimSpace(v.Get("format"))),
	}
	// expand may repeat or hold a comma separated list.
	for _, raw := range v["expand"] {
		for _, id := range strings.Split(raw, ",") {
			if id = idParam(id); id != "" {
				d.Expand = append(d.Expand, id)
			}
		}
	}
	return d
}

func (d *ChartQueryDTO) Ok() (map[string]string, bool) {
	if err := validate.Struct(d); err != nil {
		return validationErrors(err), false
	}
	return nil, true
}

func (d *ChartQueryDTO) includeInactive() bool {
	return d.IncludeInactive == "true" || d.IncludeInactive == "1"
}

func (d *ChartQueryDTO) expandSet() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(d.Expand))
	for _, raw := range d.Expand {
		if id, err := uuid.Parse(raw); err == nil {
			out[id] = struct{}{}
		}
	}
	return out
}

type SearchQueryDTO struct {
	TenantID string `query:"tenant_id" validate:"omitempty,uuid"`
	Q        string `query:"q" validate:"required,max=200"`
	Limit    int    `query:"limit" validate:"min=0,max=500"`
}

func searchQueryFromValues(v url.Values) (*SearchQueryDTO, map[string]string) {
	d := &SearchQueryDTO{
		TenantID: idParam(v.Get("tenant_id")),
		Q:        strings.TrimSpace(v.Get("q")),
	}
	if raw := strings.TrimSpace(v.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, map[string]string{"limit": "int"}
		}
		d.Limit = n
	}
	return d, nil
}

func (d *SearchQueryDTO) Ok() (map[string]string, bool) {
	if err := validate.Struct(d); err != nil {
		return validationErrors(err), false
	}
	return nil, true
}

type TenantQueryDTO struct {
	TenantID string `query:"tenant_id" validate:"omitempty,uuid"`
}

func (d *TenantQueryDTO) Ok() (map[string]string, bool) {
	if err := validate.Struct(d); err != nil {
		return validationErrors(err), false
	}
	return nil, true
}

func optionalUUID(raw string) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
