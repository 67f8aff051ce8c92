package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/orgchart/modules/orgchart/domain"
)

// snapshot is the raw input of a chart. Forests are never cached; every
// GetChart assembles a fresh one from the snapshot.
type snapshot struct {
	Employees   []domain.Employee
	Departments []domain.Department
	LoadedAt    time.Time
}

type snapshotCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*snapshot
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{entries: make(map[uuid.UUID]*snapshot)}
}

func (c *snapshotCache) Get(tenantID uuid.UUID) (*snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[tenantID]
	return v, ok
}

func (c *snapshotCache) Set(tenantID uuid.UUID, value *snapshot) {
	if tenantID == uuid.Nil || value == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = value
}

// InvalidateTenant drops the tenant's snapshot and reports whether one existed.
func (c *snapshotCache) InvalidateTenant(tenantID uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[tenantID]
	delete(c.entries, tenantID)
	return ok
}

// Clear drops every snapshot and returns how many were held.
func (c *snapshotCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[uuid.UUID]*snapshot)
	return n
}

func (c *snapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
