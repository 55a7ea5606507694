package repo

import (
	"context"
	"log/slog"
	"slices"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// CrewFilter: Skill matches when it is one of the member's skills.
type CrewFilter struct {
	Status models.CrewStatus
	Skill  string
}

func (f CrewFilter) match(c *models.CrewMember) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Skill != "" && !slices.Contains(c.Skills, f.Skill) {
		return false
	}
	return true
}

func (m *memRepo) ListCrew(ctx context.Context, f CrewFilter) ([]models.CrewMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.crew.filter(f.match, cloneCrew)
	slog.DebugContext(ctx, "ListCrew ok", "count", len(out))
	return out, nil
}

func (m *memRepo) GetCrewMember(_ context.Context, id string) (models.CrewMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.crew.get(id)
	if !ok {
		return models.CrewMember{}, models.ErrCrewNotFound
	}
	return cloneCrew(*c), nil
}

func (m *memRepo) CreateCrewMember(ctx context.Context, in models.CreateCrewRequest) (models.CrewMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timestamp()
	id, err := assignID(&m.crew, models.PrefixCrew, in.ID, now)
	if err != nil {
		return models.CrewMember{}, err
	}
	c := models.CrewMember{
		ID:                id,
		Name:              in.Name,
		Email:             in.Email,
		Phone:             nonEmptyPtr(in.Phone),
		Skills:            orEmpty(in.Skills),
		Status:            in.Status,
		CurrentAssignment: nonEmptyPtr(in.CurrentAssignment),
		Availability:      in.Availability,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if c.Status == "" {
		c.Status = models.CrewAvailable
	}
	if c.Availability == "" {
		c.Availability = models.DefaultAvailability
	}
	m.crew.insert(c)
	slog.DebugContext(ctx, "CreateCrewMember ok", "id", c.ID)
	return cloneCrew(c), nil
}

func (m *memRepo) UpdateCrewMember(ctx context.Context, id string, p models.CrewPatch) (models.CrewMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.crew.get(id)
	if !ok {
		return models.CrewMember{}, models.ErrCrewNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = nonEmptyPtr(p.Phone)
	}
	if p.Skills != nil {
		c.Skills = orEmpty(p.Skills)
	}
	if p.Status != nil && *p.Status != "" {
		c.Status = *p.Status
	}
	p.CurrentAssignment.Apply(&c.CurrentAssignment)
	if p.Availability != nil && *p.Availability != "" {
		c.Availability = *p.Availability
	}
	if p.Rating != nil {
		c.Rating = *p.Rating
	}
	if p.TotalJobs != nil {
		c.TotalJobs = *p.TotalJobs
	}
	if p.CompletedJobs != nil {
		c.CompletedJobs = *p.CompletedJobs
	}
	c.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "UpdateCrewMember ok", "id", id)
	return cloneCrew(*c), nil
}

// SetCrewStatus touches only status and currentAssignment; everything else
// on the member is left alone.
func (m *memRepo) SetCrewStatus(ctx context.Context, id string, u models.CrewStatusUpdate) (models.CrewMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.crew.get(id)
	if !ok {
		return models.CrewMember{}, models.ErrCrewNotFound
	}
	if u.Status != "" {
		c.Status = u.Status
	}
	u.CurrentAssignment.Apply(&c.CurrentAssignment)
	c.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "SetCrewStatus ok", "id", id, "status", c.Status)
	return cloneCrew(*c), nil
}

func (m *memRepo) DeleteCrewMember(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.crew.remove(id) {
		return models.ErrCrewNotFound
	}
	slog.DebugContext(ctx, "DeleteCrewMember ok", "id", id)
	return nil
}
