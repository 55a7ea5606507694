package repo

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// WorkOrderFilter: CrewID matches when the id is in AssignedCrew.
type WorkOrderFilter struct {
	Status      models.WorkOrderStatus
	CrewID      string
	ComplaintID string
}

func (f WorkOrderFilter) match(w *models.WorkOrder) bool {
	if f.Status != "" && w.Status != f.Status {
		return false
	}
	if f.CrewID != "" && !slices.Contains(w.AssignedCrew, f.CrewID) {
		return false
	}
	if f.ComplaintID != "" && w.ComplaintID != f.ComplaintID {
		return false
	}
	return true
}

// Complaint state a new work order pushes its parent into.
const openedComplaintProgress = 10

func (m *memRepo) ListWorkOrders(ctx context.Context, f WorkOrderFilter) ([]models.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.workorders.filter(f.match, cloneWorkOrder)
	slog.DebugContext(ctx, "ListWorkOrders ok", "count", len(out))
	return out, nil
}

func (m *memRepo) GetWorkOrder(_ context.Context, id string) (models.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workorders.get(id)
	if !ok {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	return cloneWorkOrder(*w), nil
}

// CreateWorkOrder links a new pending work order to an existing complaint
// and moves that complaint to in-progress/10, whatever its current state.
// Description and priority fall back to the complaint's.
func (m *memRepo) CreateWorkOrder(ctx context.Context, in models.CreateWorkOrderRequest) (models.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	parent, ok := m.complaints.get(in.ComplaintID)
	if !ok {
		return models.WorkOrder{}, models.ErrComplaintNotFound
	}
	now := m.timestamp()
	id, err := assignID(&m.workorders, models.PrefixWorkOrder, in.ID, now)
	if err != nil {
		return models.WorkOrder{}, err
	}

	w := models.WorkOrder{
		ID:                id,
		ComplaintID:       in.ComplaintID,
		Title:             in.Title,
		Description:       in.Description,
		Priority:          in.Priority,
		AssignedCrew:      orEmpty(in.AssignedCrew),
		EstimatedCost:     clonePtr(in.EstimatedCost),
		EstimatedTime:     nonEmptyPtr(in.EstimatedTime),
		RequiredResources: orEmpty(in.RequiredResources),
		Status:            models.WorkOrderPending,
		Progress:          0,
		Notes:             []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if w.Description == "" {
		w.Description = parent.Description
	}
	if w.Priority == 0 {
		w.Priority = parent.Priority
	}
	if w.Priority == 0 {
		w.Priority = models.DefaultPriority
	}
	m.workorders.insert(w)

	parent.Status = models.ComplaintInProgress
	parent.Progress = openedComplaintProgress
	parent.UpdatedAt = now

	slog.InfoContext(ctx, "work order opened", "id", w.ID, "complaint_id", parent.ID)
	return cloneWorkOrder(w), nil
}

// UpdateWorkOrder applies an allow-listed patch. A status in the patch goes
// through the same transition rules as SetWorkOrderStatus.
func (m *memRepo) UpdateWorkOrder(ctx context.Context, id string, p models.WorkOrderPatch) (models.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workorders.get(id)
	if !ok {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.Priority != nil {
		w.Priority = *p.Priority
	}
	if p.AssignedCrew != nil {
		w.AssignedCrew = orEmpty(p.AssignedCrew)
	}
	if p.EstimatedCost != nil {
		w.EstimatedCost = clonePtr(p.EstimatedCost)
	}
	if p.EstimatedTime != nil {
		w.EstimatedTime = nonEmptyPtr(p.EstimatedTime)
	}
	if p.RequiredResources != nil {
		w.RequiredResources = orEmpty(p.RequiredResources)
	}
	if p.ActualCost != nil {
		w.ActualCost = clonePtr(p.ActualCost)
	}
	if p.Notes != nil {
		w.Notes = orEmpty(p.Notes)
	}
	var status models.WorkOrderStatus
	if p.Status != nil {
		status = *p.Status
	}
	now := m.timestamp()
	m.transitionWorkOrder(ctx, w, status, p.Progress, now)
	w.UpdatedAt = now
	slog.DebugContext(ctx, "UpdateWorkOrder ok", "id", id)
	return cloneWorkOrder(*w), nil
}

// SetWorkOrderStatus: look up, apply local changes, cascade to the complaint,
// return the work order. Both records change under the same lock.
func (m *memRepo) SetWorkOrderStatus(ctx context.Context, id string, u models.WorkOrderStatusUpdate) (models.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workorders.get(id)
	if !ok {
		return models.WorkOrder{}, models.ErrWorkOrderNotFound
	}
	now := m.timestamp()
	m.transitionWorkOrder(ctx, w, u.Status, u.Progress, now)
	w.UpdatedAt = now
	slog.DebugContext(ctx, "SetWorkOrderStatus ok", "id", id, "status", w.Status, "progress", w.Progress)
	return cloneWorkOrder(*w), nil
}

// transitionWorkOrder applies status/progress to w. The first move to
// in-progress stamps StartDate; completed forces progress 100, stamps
// CompletedDate and resolves the parent complaint unconditionally (sibling
// work orders are not consulted). Caller holds m.mu.
func (m *memRepo) transitionWorkOrder(ctx context.Context, w *models.WorkOrder, status models.WorkOrderStatus, progress *int, now time.Time) {
	if status != "" {
		w.Status = status
	}
	if progress != nil {
		w.Progress = *progress
	}
	if status == models.WorkOrderInProgress && w.StartDate == nil {
		w.StartDate = &now
	}
	if status != models.WorkOrderCompleted {
		return
	}
	w.Progress = 100
	completed := now
	w.CompletedDate = &completed

	if w.ComplaintID == "" {
		return
	}
	parent, ok := m.complaints.get(w.ComplaintID)
	if !ok {
		slog.WarnContext(ctx, "completed work order has no complaint", "id", w.ID, "complaint_id", w.ComplaintID)
		return
	}
	parent.Status = models.ComplaintResolved
	parent.Progress = 100
	parent.UpdatedAt = now
	slog.InfoContext(ctx, "complaint resolved by work order", "complaint_id", parent.ID, "workorder_id", w.ID)
}

func (m *memRepo) DeleteWorkOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.workorders.remove(id) {
		return models.ErrWorkOrderNotFound
	}
	slog.DebugContext(ctx, "DeleteWorkOrder ok", "id", id)
	return nil
}
