// internal/repo/repo.go
package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanjkatariya/infraFix/internal/models"
)

// Repo defines the methods the rest of the app uses.
type Repo interface {
	// Complaints
	ListComplaints(ctx context.Context, f ComplaintFilter) ([]models.Complaint, error)
	GetComplaint(ctx context.Context, id string) (models.Complaint, error)
	CreateComplaint(ctx context.Context, in models.CreateComplaintRequest) (models.Complaint, error)
	UpdateComplaint(ctx context.Context, id string, p models.ComplaintPatch) (models.Complaint, error)
	SetComplaintStatus(ctx context.Context, id string, u models.ComplaintStatusUpdate) (models.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error

	// Work orders. Create and status changes also move the parent complaint.
	ListWorkOrders(ctx context.Context, f WorkOrderFilter) ([]models.WorkOrder, error)
	GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error)
	CreateWorkOrder(ctx context.Context, in models.CreateWorkOrderRequest) (models.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, id string, p models.WorkOrderPatch) (models.WorkOrder, error)
	SetWorkOrderStatus(ctx context.Context, id string, u models.WorkOrderStatusUpdate) (models.WorkOrder, error)
	DeleteWorkOrder(ctx context.Context, id string) error

	// Crew
	ListCrew(ctx context.Context, f CrewFilter) ([]models.CrewMember, error)
	GetCrewMember(ctx context.Context, id string) (models.CrewMember, error)
	CreateCrewMember(ctx context.Context, in models.CreateCrewRequest) (models.CrewMember, error)
	UpdateCrewMember(ctx context.Context, id string, p models.CrewPatch) (models.CrewMember, error)
	SetCrewStatus(ctx context.Context, id string, u models.CrewStatusUpdate) (models.CrewMember, error)
	DeleteCrewMember(ctx context.Context, id string) error

	// Inventory
	ListInventory(ctx context.Context, f InventoryFilter) ([]models.InventoryItem, error)
	GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, in models.CreateInventoryRequest) (models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id string, p models.InventoryPatch) (models.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, u models.StockUpdate) (models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id string) error

	// Resources (vehicles/equipment)
	ListResources(ctx context.Context, f ResourceFilter) ([]models.Resource, error)
	GetResource(ctx context.Context, id string) (models.Resource, error)
	CreateResource(ctx context.Context, in models.CreateResourceRequest) (models.Resource, error)
	UpdateResource(ctx context.Context, id string, p models.ResourcePatch) (models.Resource, error)
	AssignResource(ctx context.Context, id string, a models.ResourceAssignment) (models.Resource, error)
	ReleaseResource(ctx context.Context, id string) (models.Resource, error)
	DeleteResource(ctx context.Context, id string) error

	// Read-only composed views
	ComplaintStatus(ctx context.Context, id string) (models.ComplaintStatusView, error)
	WorkOrderStatus(ctx context.Context, id string) (models.WorkOrderStatusView, error)
	StatusOverview(ctx context.Context) (models.Overview, error)

	// Analytics, recomputed on every call
	Stats(ctx context.Context) (models.Stats, error)
	CategoryStats(ctx context.Context) (map[string]int, error)
	Trends(ctx context.Context, days int) ([]models.TrendPoint, error)
	Dashboard(ctx context.Context) (models.Dashboard, error)
}

// memRepo keeps every collection in process memory behind one lock, so
// cross-collection updates (work order -> complaint) are atomic.
type memRepo struct {
	mu  sync.RWMutex
	now func() time.Time
	loc *time.Location

	complaints collection[models.Complaint]
	workorders collection[models.WorkOrder]
	crew       collection[models.CrewMember]
	inventory  collection[models.InventoryItem]
	resources  collection[models.Resource]
}

type Option func(*memRepo)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *memRepo) { m.now = now }
}

// WithLocation sets the timezone used to bucket trend days. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(m *memRepo) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// NewMemory returns an empty in-memory Repo. Data lives for the process lifetime.
func NewMemory(opts ...Option) Repo {
	m := &memRepo{
		now:        time.Now,
		loc:        time.UTC,
		complaints: newCollection(func(c *models.Complaint) string { return c.ID }),
		workorders: newCollection(func(w *models.WorkOrder) string { return w.ID }),
		crew:       newCollection(func(c *models.CrewMember) string { return c.ID }),
		inventory:  newCollection(func(i *models.InventoryItem) string { return i.ID }),
		resources:  newCollection(func(r *models.Resource) string { return r.ID }),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *memRepo) timestamp() time.Time { return m.now().UTC() }

// assignID returns the client-supplied id if it is free, otherwise a
// generated {PREFIX}-{unix millis}-{4 chars} id.
func assignID[T any](c *collection[T], prefix, requested string, now time.Time) (string, error) {
	if requested = strings.TrimSpace(requested); requested != "" {
		if _, ok := c.get(requested); ok {
			return "", fmt.Errorf("%w: %s", models.ErrDuplicateID, requested)
		}
		return requested, nil
	}
	for {
		id := fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), randomSuffix())
		if _, ok := c.get(id); !ok {
			return id, nil
		}
	}
}

func randomSuffix() string {
	u := uuid.New()
	return strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[:4])
}
