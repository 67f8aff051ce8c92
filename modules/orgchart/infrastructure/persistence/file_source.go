package persistence

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidRecord     = errors.New("invalid record")
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", filepath.Ext(path))
	}
}

// FileSource reads employee exports. Rows keep the order of the file.
type FileSource struct {
	TenantID uuid.UUID
}

func NewFileSource(tenantID uuid.UUID) *FileSource {
	return &FileSource{TenantID: tenantID}
}

func (s *FileSource) Load(path string) ([]domain.Employee, []domain.Department, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return s.Decode(f, format)
}

func (s *FileSource) Decode(r io.Reader, format Format) ([]domain.Employee, []domain.Department, error) {
	var doc fileDocument
	switch format {
	case FormatCSV:
		employees, err := readCSV(r)
		if err != nil {
			return nil, nil, err
		}
		doc.Employees = employees
	case FormatJSON:
		if err := decodeJSON(r, &doc); err != nil {
			return nil, nil, err
		}
	case FormatYAML:
		if err := decodeYAML(r, &doc); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return doc.toDomain(s.TenantID)
}

type fileEmployee struct {
	ID           string `json:"id" yaml:"id"`
	ManagerID    string `json:"manager_id" yaml:"manager_id"`
	DepartmentID string `json:"department_id" yaml:"department_id"`
	FirstName    string `json:"first_name" yaml:"first_name"`
	LastName     string `json:"last_name" yaml:"last_name"`
	Title        string `json:"title" yaml:"title"`
	Email        string `json:"email" yaml:"email"`
	Phone        string `json:"phone" yaml:"phone"`
	Status       string `json:"status" yaml:"status"`
	DisplayOrder int    `json:"display_order" yaml:"display_order"`
}

type fileDepartment struct {
	ID   string `json:"id" yaml:"id"`
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

type fileDocument struct {
	Employees   []fileEmployee   `json:"employees" yaml:"employees"`
	Departments []fileDepartment `json:"departments" yaml:"departments"`
}

func (d fileDocument) toDomain(tenantID uuid.UUID) ([]domain.Employee, []domain.Department, error) {
	employees := make([]domain.Employee, 0, len(d.Employees))
	for i, fe := range d.Employees {
		e, err := fe.toDomain(tenantID)
		if err != nil {
			return nil, nil, fmt.Errorf("employee %d: %w", i+1, err)
		}
		employees = append(employees, e)
	}
	departments := make([]domain.Department, 0, len(d.Departments))
	for i, fd := range d.Departments {
		id, err := parseRequiredUUID("id", fd.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("department %d: %w", i+1, err)
		}
		departments = append(departments, domain.Department{ID: id, Code: fd.Code, Name: fd.Name})
	}
	return employees, departments, nil
}

func (fe fileEmployee) toDomain(tenantID uuid.UUID) (domain.Employee, error) {
	id, err := parseRequiredUUID("id", fe.ID)
	if err != nil {
		return domain.Employee{}, err
	}
	manager, err := parseOptionalUUID("manager_id", fe.ManagerID)
	if err != nil {
		return domain.Employee{}, err
	}
	department, err := parseOptionalUUID("department_id", fe.DepartmentID)
	if err != nil {
		return domain.Employee{}, err
	}
	status, err := domain.ParseStatus(fe.Status)
	if err != nil {
		return domain.Employee{}, errors.Wrap(ErrInvalidRecord, err.Error())
	}
	return domain.Employee{
		ID:           id,
		TenantID:     tenantID,
		ManagerID:    manager,
		DepartmentID: department,
		FirstName:    strings.TrimSpace(fe.FirstName),
		LastName:     strings.TrimSpace(fe.LastName),
		Title:        strings.TrimSpace(fe.Title),
		Email:        strings.TrimSpace(fe.Email),
		Phone:        strings.TrimSpace(fe.Phone),
		Status:       status,
		DisplayOrder: fe.DisplayOrder,
	}, nil
}

func parseRequiredUUID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errors.Wrapf(ErrInvalidRecord, "%s is required", field)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(ErrInvalidRecord, "invalid %s %q", field, raw)
	}
	return id, nil
}

func parseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseRequiredUUID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

var csvColumns = []string{
	"id", "manager_id", "department_id", "first_name", "last_name",
	"title", "email", "phone", "status", "display_order",
}

func readCSV(r io.Reader) ([]fileEmployee, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := pos["id"]; !ok {
		return nil, errors.Wrap(ErrInvalidRecord, "csv header has no id column")
	}

	var out []fileEmployee
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}
		col := func(name string) string {
			if i, ok := pos[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		fe := fileEmployee{
			ID:           col(csvColumns[0]),
			ManagerID:    col(csvColumns[1]),
			DepartmentID: col(csvColumns[2]),
			FirstName:    col(csvColumns[3]),
			LastName:     col(csvColumns[4]),
			Title:        col(csvColumns[5]),
			Email:        col(csvColumns[6]),
			Phone:        col(csvColumns[7]),
			Status:       col(csvColumns[8]),
		}
		if raw := col(csvColumns[9]); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidRecord, "line %d: invalid display_order %q", line, raw)
			}
			fe.DisplayOrder = n
		}
		out = append(out, fe)
	}
}

// decodeJSON accepts either a document with employees/departments or a bare
// employee array.
func decodeJSON(r io.Reader, doc *fileDocument) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var target any = doc
	if data[0] == '[' {
		target = &doc.Employees
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Wrap(err, "decode json")
	}
	return nil
}

func decodeYAML(r io.Reader, doc *fileDocument) error {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, "decode yaml")
	}
	if len(root.Content) == 0 {
		return nil
	}
	var target any = doc
	if root.Content[0].Kind == yaml.SequenceNode {
		target = &doc.Employees
	}
	if err := root.Content[0].Decode(target); err != nil {
		return errors.Wrap(err, "decode yaml")
	}
	return nil
}
