package viewmodels

import (
	"time"

	"github.com/google/uuid"
)

type OrgChartNode struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Title         string          `json:"title"`
	Department    string          `json:"department"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Status        string          `json:"status"`
	ManagerID     *uuid.UUID      `json:"manager_id"`
	DirectReports int             `json:"direct_reports"`
	Expanded      bool            `json:"expanded"`
	Children      []*OrgChartNode `json:"children"`
}

type OrgChartStats struct {
	Employees   int `json:"employees"`
	Departments int `json:"departments"`
	Roots       int `json:"roots"`
	Levels      int `json:"levels"`
	Managers    int `json:"managers"`
}

type OrgChart struct {
	Nodes       []*OrgChartNode `json:"nodes"`
	Stats       OrgChartStats   `json:"stats"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// OrgTreeRow is one line of the chart rendered as an indented list.
type OrgTreeRow struct {
	ID            uuid.UUID  `json:"id"`
	ParentID      *uuid.UUID `json:"parent_id"`
	Name          string     `json:"name"`
	Title         string     `json:"title"`
	Department    string     `json:"department"`
	Depth         int        `json:"depth"`
	DirectReports int        `json:"direct_reports"`
	Selected      bool       `json:"selected"`
}

type OrgTreeRows struct {
	Rows        []OrgTreeRow  `json:"rows"`
	Stats       OrgChartStats `json:"stats"`
	GeneratedAt time.Time     `json:"generated_at"`
}
