// internal/models/types.go
package models

import (
	"errors"
	"time"
)

// Complaint is a citizen report of an infrastructure problem.
type Complaint struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Category      string          `json:"category"`
	IssueType     string          `json:"issueType"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Coordinates   *Coordinates    `json:"coordinates"`
	Phone         *string         `json:"phone"`
	Images        []string        `json:"images"`
	Priority      float64         `json:"priority"`
	Status        ComplaintStatus `json:"status"`
	Progress      int             `json:"progress"`
	AssignedCrew  *string         `json:"assignedCrew"`
	EstimatedCost *float64        `json:"estimatedCost"`
	EstimatedTime *string         `json:"estimatedTime"`
	Notes         []string        `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// WorkOrder is the unit of field work raised against a complaint.
type WorkOrder struct {
	ID                string          `json:"id"`
	ComplaintID       string          `json:"complaintId"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Priority          float64         `json:"priority"`
	AssignedCrew      []string        `json:"assignedCrew"`
	EstimatedCost     *float64        `json:"estimatedCost"`
	EstimatedTime     *string         `json:"estimatedTime"`
	RequiredResources []string        `json:"requiredResources"`
	Status            WorkOrderStatus `json:"status"`
	Progress          int             `json:"progress"`
	StartDate         *time.Time      `json:"startDate"`
	CompletedDate     *time.Time      `json:"completedDate"`
	ActualCost        *float64        `json:"actualCost"`
	Notes             []string        `json:"notes"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// CrewMember is a field worker that can be put on work orders.
type CrewMember struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone"`
	Skills            []string   `json:"skills"`
	Status            CrewStatus `json:"status"`
	CurrentAssignment *string    `json:"currentAssignment"`
	Availability      string     `json:"availability"`
	Rating            float64    `json:"rating"`
	TotalJobs         int        `json:"totalJobs"`
	CompletedJobs     int        `json:"completedJobs"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// InventoryItem is a stocked consumable (asphalt, bulbs, pipe fittings...).
type InventoryItem struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       *string    `json:"description"`
	Category          string     `json:"category"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit"`
	Cost              *float64   `json:"cost"`
	Supplier          *string    `json:"supplier"`
	LowStockThreshold float64    `json:"lowStockThreshold"`
	Location          *string    `json:"location"`
	LastRestocked     *time.Time `json:"lastRestocked"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// IsLowStock reports whether the item is at or under its threshold.
// A zero threshold falls back to DefaultLowStockThreshold.
func (i InventoryItem) IsLowStock() bool {
	threshold := i.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return i.Quantity <= threshold
}

// Resource is a vehicle or piece of equipment.
type Resource struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Type                string         `json:"type"`
	Description         *string        `json:"description"`
	Status              ResourceStatus `json:"status"`
	Location            *string        `json:"location"`
	Capacity            *float64       `json:"capacity"`
	CurrentUsage        float64        `json:"currentUsage"`
	AssignedTo          *string        `json:"assignedTo"`
	CurrentAssignment   *string        `json:"currentAssignment"`
	MaintenanceSchedule *string        `json:"maintenanceSchedule"`
	LastMaintenance     *time.Time     `json:"lastMaintenance"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// Defaults applied on create.
const (
	DefaultPriority          = 5
	DefaultLowStockThreshold = 10
	DefaultUserID            = "anonymous"
	DefaultUnit              = "pieces"
	DefaultAvailability      = "full-time"
	DefaultCategory          = "other"
)

// ID prefixes, one per collection.
const (
	PrefixComplaint = "CPL"
	PrefixWorkOrder = "WO"
	PrefixCrew      = "CREW"
	PrefixInventory = "INV"
	PrefixResource  = "RES"
)

var (
	ErrComplaintNotFound      = errors.New("complaint not found")
	ErrWorkOrderNotFound      = errors.New("workorder not found")
	ErrCrewNotFound           = errors.New("crew member not found")
	ErrInventoryNotFound      = errors.New("inventory item not found")
	ErrResourceNotFound       = errors.New("resource not found")
	ErrDuplicateID            = errors.New("duplicate id")
	ErrComplaintHasWorkOrders = errors.New("complaint has work orders")
	ErrInvalidStockAction     = errors.New("invalid stock action")
	ErrQuantityRequired       = errors.New("quantity required")
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCitizen Role = "citizen"
)

// User is the mock identity handed out by /auth/login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type Session struct {
	Token  string
	User   User
	Expiry time.Time
}
