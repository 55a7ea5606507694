package repo

import (
	"context"
	"log/slog"

	"github.com/sanjkatariya/infraFix/internal/models"
)

func (m *memRepo) ComplaintStatus(ctx context.Context, id string) (models.ComplaintStatusView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.complaints.get(id)
	if !ok {
		return models.ComplaintStatusView{}, models.ErrComplaintNotFound
	}
	view := models.ComplaintStatusView{
		Complaint: models.ComplaintSummary{
			ID:        c.ID,
			Status:    c.Status,
			Progress:  c.Progress,
			Category:  c.Category,
			Location:  c.Location,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		WorkOrders: []models.WorkOrderSummary{},
	}
	for i := range m.workorders.rows {
		w := &m.workorders.rows[i]
		if w.ComplaintID != id {
			continue
		}
		view.WorkOrders = append(view.WorkOrders, models.WorkOrderSummary{
			ID:            w.ID,
			Status:        w.Status,
			Progress:      w.Progress,
			Title:         w.Title,
			AssignedCrew:  orEmpty(w.AssignedCrew),
			StartDate:     clonePtr(w.StartDate),
			CompletedDate: clonePtr(w.CompletedDate),
		})
	}
	slog.DebugContext(ctx, "ComplaintStatus ok", "id", id, "workorders", len(view.WorkOrders))
	return view, nil
}

// WorkOrderStatus joins the work order with its crew members and parent
// complaint. Dangling crew ids are dropped and a missing complaint is nil.
func (m *memRepo) WorkOrderStatus(ctx context.Context, id string) (models.WorkOrderStatusView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.workorders.get(id)
	if !ok {
		return models.WorkOrderStatusView{}, models.ErrWorkOrderNotFound
	}
	view := models.WorkOrderStatusView{
		WorkOrder: models.WorkOrderDetail{
			ID:            w.ID,
			Status:        w.Status,
			Progress:      w.Progress,
			Title:         w.Title,
			Description:   w.Description,
			Priority:      w.Priority,
			StartDate:     clonePtr(w.StartDate),
			CompletedDate: clonePtr(w.CompletedDate),
			EstimatedCost: clonePtr(w.EstimatedCost),
			ActualCost:    clonePtr(w.ActualCost),
		},
		Crew: []models.CrewMember{},
	}
	for _, crewID := range w.AssignedCrew {
		if c, ok := m.crew.get(crewID); ok {
			view.Crew = append(view.Crew, cloneCrew(*c))
		}
	}
	if w.ComplaintID != "" {
		if c, ok := m.complaints.get(w.ComplaintID); ok {
			view.Complaint = &models.ComplaintRef{ID: c.ID, Category: c.Category, Location: c.Location}
		}
	}
	slog.DebugContext(ctx, "WorkOrderStatus ok", "id", id, "crew", len(view.Crew))
	return view, nil
}

func (m *memRepo) StatusOverview(ctx context.Context) (models.Overview, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := models.Overview{
		Complaints: countBy(m.complaints.rows, func(c *models.Complaint) string { return string(c.Status) },
			string(models.ComplaintPending), string(models.ComplaintInProgress), string(models.ComplaintResolved)),
		WorkOrders: countBy(m.workorders.rows, func(w *models.WorkOrder) string { return string(w.Status) },
			string(models.WorkOrderPending), string(models.WorkOrderInProgress), string(models.WorkOrderCompleted)),
		Crew: countBy(m.crew.rows, func(c *models.CrewMember) string { return string(c.Status) },
			string(models.CrewAvailable), string(models.CrewBusy), string(models.CrewOnLeave)),
	}
	slog.DebugContext(ctx, "StatusOverview ok")
	return out, nil
}

// countBy tallies rows whose key is one of keys. "total" counts every row,
// so it can exceed the sum when a row carries an unknown status.
func countBy[T any](rows []T, key func(*T) string, keys ...string) map[string]int {
	out := make(map[string]int, len(keys)+1)
	out["total"] = len(rows)
	for _, k := range keys {
		out[k] = 0
	}
	for i := range rows {
		k := key(&rows[i])
		if _, ok := out[k]; ok && k != "total" {
			out[k]++
		}
	}
	return out
}
