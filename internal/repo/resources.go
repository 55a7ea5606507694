package repo

import (
	"context"
	"log/slog"

	"github.com/sanjkatariya/infraFix/internal/models"
)

type ResourceFilter struct {
	Type   string
	Status models.ResourceStatus
}

func (f ResourceFilter) match(r *models.Resource) bool {
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}

func (m *memRepo) ListResources(ctx context.Context, f ResourceFilter) ([]models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.resources.filter(f.match, cloneResource)
	slog.DebugContext(ctx, "ListResources ok", "count", len(out))
	return out, nil
}

func (m *memRepo) GetResource(_ context.Context, id string) (models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources.get(id)
	if !ok {
		return models.Resource{}, models.ErrResourceNotFound
	}
	return cloneResource(*r), nil
}

func (m *memRepo) CreateResource(ctx context.Context, in models.CreateResourceRequest) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timestamp()
	id, err := assignID(&m.resources, models.PrefixResource, in.ID, now)
	if err != nil {
		return models.Resource{}, err
	}
	r := models.Resource{
		ID:           id,
		Name:         in.Name,
		Type:         in.Type,
		Description:  nonEmptyPtr(in.Description),
		Status:       in.Status,
		Location:     nonEmptyPtr(in.Location),
		Capacity:     clonePtr(in.Capacity),
		CurrentUsage: in.CurrentUsage,
		AssignedTo:   nonEmptyPtr(in.AssignedTo),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if r.Status == "" {
		r.Status = models.ResourceAvailable
	}
	m.resources.insert(r)
	slog.DebugContext(ctx, "CreateResource ok", "id", r.ID, "type", r.Type)
	return cloneResource(r), nil
}

func (m *memRepo) UpdateResource(ctx context.Context, id string, p models.ResourcePatch) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources.get(id)
	if !ok {
		return models.Resource{}, models.ErrResourceNotFound
	}
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Description != nil {
		r.Description = nonEmptyPtr(p.Description)
	}
	if p.Status != nil && *p.Status != "" {
		// Coming back from maintenance counts as a service.
		if r.Status == models.ResourceMaintenance && *p.Status != models.ResourceMaintenance {
			serviced := m.timestamp()
			r.LastMaintenance = &serviced
		}
		r.Status = *p.Status
	}
	if p.Location != nil {
		r.Location = nonEmptyPtr(p.Location)
	}
	if p.Capacity != nil {
		r.Capacity = clonePtr(p.Capacity)
	}
	if p.CurrentUsage != nil {
		r.CurrentUsage = *p.CurrentUsage
	}
	p.AssignedTo.Apply(&r.AssignedTo)
	p.CurrentAssignment.Apply(&r.CurrentAssignment)
	if p.MaintenanceSchedule != nil {
		r.MaintenanceSchedule = nonEmptyPtr(p.MaintenanceSchedule)
	}
	r.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "UpdateResource ok", "id", id)
	return cloneResource(*r), nil
}

// AssignResource marks the resource in-use. A second assign overwrites the
// first; there is no reservation.
func (m *memRepo) AssignResource(ctx context.Context, id string, a models.ResourceAssignment) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources.get(id)
	if !ok {
		return models.Resource{}, models.ErrResourceNotFound
	}
	if r.Status == models.ResourceInUse && r.CurrentAssignment != nil {
		slog.InfoContext(ctx, "resource reassigned", "id", id, "from", *r.CurrentAssignment, "to", a.WorkOrderID)
	}
	r.Status = models.ResourceInUse
	r.AssignedTo = nonEmptyPtr(&a.AssignedTo)
	r.CurrentAssignment = nonEmptyPtr(&a.WorkOrderID)
	r.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "AssignResource ok", "id", id, "workorder_id", a.WorkOrderID)
	return cloneResource(*r), nil
}

func (m *memRepo) ReleaseResource(ctx context.Context, id string) (models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resources.get(id)
	if !ok {
		return models.Resource{}, models.ErrResourceNotFound
	}
	r.Status = models.ResourceAvailable
	r.AssignedTo = nil
	r.CurrentAssignment = nil
	r.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "ReleaseResource ok", "id", id)
	return cloneResource(*r), nil
}

func (m *memRepo) DeleteResource(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.resources.remove(id) {
		return models.ErrResourceNotFound
	}
	slog.DebugContext(ctx, "DeleteResource ok", "id", id)
	return nil
}
