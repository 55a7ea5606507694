package repo

import (
	"context"
	"log/slog"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// ComplaintFilter fields are exact-match and AND-combined; empty means any.
type ComplaintFilter struct {
	Status   models.ComplaintStatus
	Category string
	UserID   string
}

func (f ComplaintFilter) match(c *models.Complaint) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.UserID != "" && c.UserID != f.UserID {
		return false
	}
	return true
}

func (m *memRepo) ListComplaints(ctx context.Context, f ComplaintFilter) ([]models.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.complaints.filter(f.match, cloneComplaint)
	slog.DebugContext(ctx, "ListComplaints ok", "count", len(out))
	return out, nil
}

func (m *memRepo) GetComplaint(_ context.Context, id string) (models.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.complaints.get(id)
	if !ok {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	return cloneComplaint(*c), nil
}

// CreateComplaint stores a new complaint in the pending state. Required
// fields are the caller's responsibility.
func (m *memRepo) CreateComplaint(ctx context.Context, in models.CreateComplaintRequest) (models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timestamp()
	id, err := assignID(&m.complaints, models.PrefixComplaint, in.ID, now)
	if err != nil {
		return models.Complaint{}, err
	}
	c := models.Complaint{
		ID:          id,
		UserID:      in.UserID,
		Category:    in.Category,
		IssueType:   in.IssueType,
		Description: in.Description,
		Location:    in.Location,
		Coordinates: clonePtr(in.Coordinates),
		Phone:       nonEmptyPtr(in.Phone),
		Images:      orEmpty(in.Images),
		Priority:    in.Priority,
		Status:      models.ComplaintPending,
		Progress:    0,
		Notes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.UserID == "" {
		c.UserID = models.DefaultUserID
	}
	if c.IssueType == "" {
		c.IssueType = c.Category
	}
	if c.Priority == 0 {
		c.Priority = models.DefaultPriority
	}
	m.complaints.insert(c)
	slog.DebugContext(ctx, "CreateComplaint ok", "id", c.ID, "category", c.Category)
	return cloneComplaint(c), nil
}

func (m *memRepo) UpdateComplaint(ctx context.Context, id string, p models.ComplaintPatch) (models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints.get(id)
	if !ok {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.IssueType != nil {
		c.IssueType = *p.IssueType
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Coordinates != nil {
		c.Coordinates = clonePtr(p.Coordinates)
	}
	if p.Phone != nil {
		c.Phone = nonEmptyPtr(p.Phone)
	}
	if p.Images != nil {
		c.Images = orEmpty(p.Images)
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.Status != nil && *p.Status != "" {
		c.Status = *p.Status
	}
	if p.Progress != nil {
		c.Progress = *p.Progress
	}
	p.AssignedCrew.Apply(&c.AssignedCrew)
	if p.EstimatedCost != nil {
		c.EstimatedCost = clonePtr(p.EstimatedCost)
	}
	if p.EstimatedTime != nil {
		c.EstimatedTime = clonePtr(p.EstimatedTime)
	}
	if p.Notes != nil {
		c.Notes = orEmpty(p.Notes)
	}
	c.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "UpdateComplaint ok", "id", id)
	return cloneComplaint(*c), nil
}

// SetComplaintStatus moves status and, when given, progress. Backward moves
// are allowed so an admin can reopen a complaint.
func (m *memRepo) SetComplaintStatus(ctx context.Context, id string, u models.ComplaintStatusUpdate) (models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.complaints.get(id)
	if !ok {
		return models.Complaint{}, models.ErrComplaintNotFound
	}
	if u.Status != "" {
		c.Status = u.Status
	}
	if u.Progress != nil {
		c.Progress = *u.Progress
	}
	c.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "SetComplaintStatus ok", "id", id, "status", c.Status, "progress", c.Progress)
	return cloneComplaint(*c), nil
}

// DeleteComplaint refuses while any work order still points at the complaint.
func (m *memRepo) DeleteComplaint(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.complaints.get(id); !ok {
		return models.ErrComplaintNotFound
	}
	for i := range m.workorders.rows {
		if m.workorders.rows[i].ComplaintID == id {
			return models.ErrComplaintHasWorkOrders
		}
	}
	m.complaints.remove(id)
	slog.DebugContext(ctx, "DeleteComplaint ok", "id", id)
	return nil
}
