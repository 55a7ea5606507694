package repo

import (
	"slices"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// collection is an insertion-ordered slice of records. Callers hold memRepo.mu.
// Lookups are linear scans.
type collection[T any] struct {
	rows []T
	id   func(*T) string
}

func newCollection[T any](id func(*T) string) collection[T] {
	return collection[T]{id: id}
}

func (c *collection[T]) index(id string) int {
	for i := range c.rows {
		if c.id(&c.rows[i]) == id {
			return i
		}
	}
	return -1
}

// get returns a pointer into the backing slice; it is only valid while the lock is held.
func (c *collection[T]) get(id string) (*T, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return &c.rows[i], true
}

func (c *collection[T]) insert(v T) { c.rows = append(c.rows, v) }

func (c *collection[T]) remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.rows = slices.Delete(c.rows, i, i+1)
	return true
}

func (c *collection[T]) len() int { return len(c.rows) }

// filter returns clones of the rows accepted by keep (all rows when keep is nil).
func (c *collection[T]) filter(keep func(*T) bool, clone func(T) T) []T {
	out := make([]T, 0, len(c.rows))
	for i := range c.rows {
		if keep == nil || keep(&c.rows[i]) {
			out = append(out, clone(c.rows[i]))
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// orEmpty keeps list fields serialising as [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func cloneComplaint(c models.Complaint) models.Complaint {
	c.Coordinates = clonePtr(c.Coordinates)
	c.Phone = clonePtr(c.Phone)
	c.Images = orEmpty(c.Images)
	c.AssignedCrew = clonePtr(c.AssignedCrew)
	c.EstimatedCost = clonePtr(c.EstimatedCost)
	c.EstimatedTime = clonePtr(c.EstimatedTime)
	c.Notes = orEmpty(c.Notes)
	return c
}

func cloneWorkOrder(w models.WorkOrder) models.WorkOrder {
	w.AssignedCrew = orEmpty(w.AssignedCrew)
	w.EstimatedCost = clonePtr(w.EstimatedCost)
	w.EstimatedTime = clonePtr(w.EstimatedTime)
	w.RequiredResources = orEmpty(w.RequiredResources)
	w.StartDate = clonePtr(w.StartDate)
	w.CompletedDate = clonePtr(w.CompletedDate)
	w.ActualCost = clonePtr(w.ActualCost)
	w.Notes = orEmpty(w.Notes)
	return w
}

func cloneCrew(c models.CrewMember) models.CrewMember {
	c.Phone = clonePtr(c.Phone)
	c.Skills = orEmpty(c.Skills)
	c.CurrentAssignment = clonePtr(c.CurrentAssignment)
	return c
}

func cloneInventory(i models.InventoryItem) models.InventoryItem {
	i.Description = clonePtr(i.Description)
	i.Cost = clonePtr(i.Cost)
	i.Supplier = clonePtr(i.Supplier)
	i.Location = clonePtr(i.Location)
	i.LastRestocked = clonePtr(i.LastRestocked)
	return i
}

func cloneResource(r models.Resource) models.Resource {
	r.Description = clonePtr(r.Description)
	r.Location = clonePtr(r.Location)
	r.Capacity = clonePtr(r.Capacity)
	r.AssignedTo = clonePtr(r.AssignedTo)
	r.CurrentAssignment = clonePtr(r.CurrentAssignment)
	r.MaintenanceSchedule = clonePtr(r.MaintenanceSchedule)
	r.LastMaintenance = clonePtr(r.LastMaintenance)
	return r
}

// nonEmptyPtr treats "" as absent, matching how the API has always
// defaulted optional text fields to null.
func nonEmptyPtr(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return clonePtr(p)
}
