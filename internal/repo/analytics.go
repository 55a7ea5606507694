package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/sanjkatariya/infraFix/internal/models"
)

const (
	DefaultTrendDays = 7
	MaxTrendDays     = 365
)

func (m *memRepo) Stats(ctx context.Context) (models.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.statsLocked()
	slog.DebugContext(ctx, "Stats ok", "complaints", s.TotalComplaints)
	return s, nil
}

func (m *memRepo) CategoryStats(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.categoryStatsLocked()
	slog.DebugContext(ctx, "CategoryStats ok", "categories", len(out))
	return out, nil
}

func (m *memRepo) Trends(ctx context.Context, days int) ([]models.TrendPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.trendsLocked(days)
	slog.DebugContext(ctx, "Trends ok", "days", len(out))
	return out, nil
}

// Dashboard computes stats, categories and a 7-day trend from one snapshot.
func (m *memRepo) Dashboard(ctx context.Context) (models.Dashboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d := models.Dashboard{
		Stats:         m.statsLocked(),
		CategoryStats: m.categoryStatsLocked(),
		Trends:        m.trendsLocked(DefaultTrendDays),
	}
	slog.DebugContext(ctx, "Dashboard ok")
	return d, nil
}

func (m *memRepo) statsLocked() models.Stats {
	s := models.Stats{
		TotalComplaints: m.complaints.len(),
		CrewMembers:     m.crew.len(),
	}
	for i := range m.workorders.rows {
		if m.workorders.rows[i].Status == models.WorkOrderCompleted {
			s.CompletedWorkorders++
		} else {
			s.ActiveWorkorders++
		}
	}
	for i := range m.inventory.rows {
		s.InventoryItems += m.inventory.rows[i].Quantity
	}
	for i := range m.complaints.rows {
		switch m.complaints.rows[i].Status {
		case models.ComplaintPending:
			s.PendingComplaints++
		case models.ComplaintInProgress:
			s.InProgressComplaints++
		case models.ComplaintResolved:
			s.ResolvedComplaints++
		}
	}
	return s
}

func (m *memRepo) categoryStatsLocked() map[string]int {
	out := map[string]int{}
	for i := range m.complaints.rows {
		cat := m.complaints.rows[i].Category
		if cat == "" {
			cat = models.DefaultCategory
		}
		out[cat]++
	}
	return out
}

// trendsLocked buckets complaints by calendar day in m.loc for the last
// days days, today included, oldest first. days outside 1..MaxTrendDays
// falls back to the default or the cap.
func (m *memRepo) trendsLocked(days int) []models.TrendPoint {
	if days <= 0 {
		days = DefaultTrendDays
	}
	days = min(days, MaxTrendDays)

	counts := make(map[string]int, days)
	for i := range m.complaints.rows {
		counts[dayKey(m.complaints.rows[i].CreatedAt, m.loc)]++
	}

	today := m.now().In(m.loc)
	out := make([]models.TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := dayKey(today.AddDate(0, 0, -i), m.loc)
		out = append(out, models.TrendPoint{Date: key, Complaints: counts[key]})
	}
	return out
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.DateOnly)
}
