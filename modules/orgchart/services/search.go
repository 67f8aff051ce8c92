package services

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/pkg/hierarchy"
)

const maxSearchLimit = 500

type SearchHit struct {
	Employee domain.Employee
	// Path runs from the employee's root down to the employee itself.
	Path     []uuid.UUID
	Distance int
}

// Search fuzzy-matches q against name, title and email of the employees in
// the default chart scope. Hits are ordered by match distance.
func (s *ChartService) Search(ctx context.Context, tenantID uuid.UUID, q string, limit int) ([]SearchHit, error) {
	ctx, span := tracer.Start(ctx, "orgchart.Search", trace.WithAttributes(
		attribute.String("orgchart.tenant_id", tenantID.String()),
	))
	defer span.End()

	if tenantID == uuid.Nil {
		return nil, errNoTenant()
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, newServiceError(http.StatusBadRequest, "ORGCHART_EMPTY_QUERY", "q is required", nil)
	}
	if limit <= 0 {
		limit = s.opts.SearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	roots, _ := s.assemble(tenantID, snap, ChartQuery{})
	entries := hierarchy.Flatten(roots)

	parentOf := make(map[string]string, len(entries))
	targets := make([]string, len(entries))
	for i, entry := range entries {
		// With duplicate ids the first pre-order occurrence wins, which keeps
		// the parent chain pointing strictly backwards.
		if _, seen := parentOf[entry.Node.ID()]; !seen {
			parentOf[entry.Node.ID()] = entry.ParentID
		}
		targets[i] = searchText(entry.Node.Payload())
	}

	ranks := fuzzy.RankFindNormalizedFold(q, targets)
	sort.Stable(ranks)

	hits := make([]SearchHit, 0, min(limit, len(ranks)))
	for _, rank := range ranks {
		if len(hits) == limit {
			break
		}
		e := entries[rank.OriginalIndex].Node.Payload()
		hits = append(hits, SearchHit{
			Employee: e,
			Path:     pathOf(e.ID.String(), parentOf),
			Distance: rank.Distance,
		})
	}
	span.SetAttributes(attribute.Int("orgchart.hits", len(hits)))
	return hits, nil
}

func searchText(e domain.Employee) string {
	parts := []string{e.FullName()}
	if e.Title != "" {
		parts = append(parts, e.Title)
	}
	if e.Email != "" {
		parts = append(parts, e.Email)
	}
	return strings.Join(parts, " ")
}

// pathOf follows parent links up to the root. The forest is acyclic, so the
// walk ends.
func pathOf(id string, parentOf map[string]string) []uuid.UUID {
	var rev []uuid.UUID
	for cur := id; cur != ""; cur = parentOf[cur] {
		rev = append(rev, uuid.MustParse(cur))
	}
	out := make([]uuid.UUID, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}
