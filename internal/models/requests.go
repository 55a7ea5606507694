package models

// Create bodies. Only the fields listed here are read from the client; the
// server fills identifiers, timestamps and lifecycle state.

type CreateComplaintRequest struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Category    string       `json:"category" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Location    string       `json:"location" validate:"required"`
	Coordinates *Coordinates `json:"coordinates"`
	Phone       *string      `json:"phone"`
	Images      []string     `json:"images"`
	Priority    float64      `json:"priority" validate:"gte=0"`
	IssueType   string       `json:"issueType"`
}

type CreateWorkOrderRequest struct {
	ID                string   `json:"id"`
	ComplaintID       string   `json:"complaintId" validate:"required"`
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description"`
	Priority          float64  `json:"priority" validate:"gte=0"`
	AssignedCrew      []string `json:"assignedCrew"`
	EstimatedCost     *float64 `json:"estimatedCost"`
	EstimatedTime     *string  `json:"estimatedTime"`
	RequiredResources []string `json:"requiredResources"`
}

type CreateCrewRequest struct {
	ID                string     `json:"id"`
	Name              string     `json:"name" validate:"required"`
	Email             string     `json:"email" validate:"required"`
	Phone             *string    `json:"phone"`
	Skills            []string   `json:"skills"`
	Status            CrewStatus `json:"status" validate:"omitempty,oneof=available busy on-leave"`
	CurrentAssignment *string    `json:"currentAssignment"`
	Availability      string     `json:"availability"`
}

type CreateInventoryRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name" validate:"required"`
	Description       *string  `json:"description"`
	Category          string   `json:"category" validate:"required"`
	Quantity          *float64 `json:"quantity" validate:"required"`
	Unit              string   `json:"unit"`
	Cost              *float64 `json:"cost"`
	Supplier          *string  `json:"supplier"`
	LowStockThreshold float64  `json:"lowStockThreshold" validate:"gte=0"`
}

type CreateResourceRequest struct {
	ID           string         `json:"id"`
	Name         string         `json:"name" validate:"required"`
	Type         string         `json:"type" validate:"required"`
	Description  *string        `json:"description"`
	Status       ResourceStatus `json:"status" validate:"omitempty,oneof=available in-use maintenance"`
	Location     *string        `json:"location"`
	Capacity     *float64       `json:"capacity"`
	CurrentUsage float64        `json:"currentUsage"`
	AssignedTo   *string        `json:"assignedTo"`
}

// Patch bodies. These are the allow-lists for PATCH: anything else in the
// payload (id, createdAt, unknown keys) is rejected by the decoder.

type ComplaintPatch struct {
	Category      *string          `json:"category" validate:"omitempty,min=1"`
	IssueType     *string          `json:"issueType"`
	Description   *string          `json:"description" validate:"omitempty,min=1"`
	Location      *string          `json:"location" validate:"omitempty,min=1"`
	Coordinates   *Coordinates     `json:"coordinates"`
	Phone         *string          `json:"phone"`
	Images        []string         `json:"images"`
	Priority      *float64         `json:"priority" validate:"omitempty,gte=0"`
	Status        *ComplaintStatus `json:"status" validate:"omitempty,oneof=pending in-progress resolved"`
	Progress      *int             `json:"progress" validate:"omitempty,gte=0,lte=100"`
	AssignedCrew  Nullable[string] `json:"assignedCrew"`
	EstimatedCost *float64         `json:"estimatedCost"`
	EstimatedTime *string          `json:"estimatedTime"`
	Notes         []string         `json:"notes"`
}

type ComplaintStatusUpdate struct {
	Status   ComplaintStatus `json:"status" validate:"required,oneof=pending in-progress resolved"`
	Progress *int            `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

type WorkOrderPatch struct {
	Title             *string          `json:"title" validate:"omitempty,min=1"`
	Description       *string          `json:"description"`
	Priority          *float64         `json:"priority" validate:"omitempty,gte=0"`
	AssignedCrew      []string         `json:"assignedCrew"`
	EstimatedCost     *float64         `json:"estimatedCost"`
	EstimatedTime     *string          `json:"estimatedTime"`
	RequiredResources []string         `json:"requiredResources"`
	Status            *WorkOrderStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Progress          *int             `json:"progress" validate:"omitempty,gte=0,lte=100"`
	ActualCost        *float64         `json:"actualCost"`
	Notes             []string         `json:"notes"`
}

type WorkOrderStatusUpdate struct {
	Status   WorkOrderStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Progress *int            `json:"progress" validate:"omitempty,gte=0,lte=100"`
}

type CrewPatch struct {
	Name              *string          `json:"name" validate:"omitempty,min=1"`
	Email             *string          `json:"email" validate:"omitempty,min=1"`
	Phone             *string          `json:"phone"`
	Skills            []string         `json:"skills"`
	Status            *CrewStatus      `json:"status" validate:"omitempty,oneof=available busy on-leave"`
	CurrentAssignment Nullable[string] `json:"currentAssignment"`
	Availability      *string          `json:"availability"`
	Rating            *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	TotalJobs         *int             `json:"totalJobs" validate:"omitempty,gte=0"`
	CompletedJobs     *int             `json:"completedJobs" validate:"omitempty,gte=0"`
}

// CrewStatusUpdate is the narrow status endpoint body: only status and
// currentAssignment may change here.
type CrewStatusUpdate struct {
	Status            CrewStatus       `json:"status" validate:"omitempty,oneof=available busy on-leave"`
	CurrentAssignment Nullable[string] `json:"currentAssignment"`
}

type InventoryPatch struct {
	Name              *string  `json:"name" validate:"omitempty,min=1"`
	Description       *string  `json:"description"`
	Category          *string  `json:"category" validate:"omitempty,min=1"`
	Quantity          *float64 `json:"quantity" validate:"omitempty,gte=0"`
	Unit              *string  `json:"unit"`
	Cost              *float64 `json:"cost"`
	Supplier          *string  `json:"supplier"`
	LowStockThreshold *float64 `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Location          *string  `json:"location"`
}

type StockAction string

const (
	StockAdd      StockAction = "add"
	StockSubtract StockAction = "subtract"
	StockSet      StockAction = "set"
)

type StockUpdate struct {
	Quantity *float64    `json:"quantity" validate:"omitempty,gte=0"`
	Action   StockAction `json:"action" validate:"omitempty,oneof=add subtract set"`
}

type ResourcePatch struct {
	Name                *string          `json:"name" validate:"omitempty,min=1"`
	Type                *string          `json:"type" validate:"omitempty,min=1"`
	Description         *string          `json:"description"`
	Status              *ResourceStatus  `json:"status" validate:"omitempty,oneof=available in-use maintenance"`
	Location            *string          `json:"location"`
	Capacity            *float64         `json:"capacity"`
	CurrentUsage        *float64         `json:"currentUsage" validate:"omitempty,gte=0"`
	AssignedTo          Nullable[string] `json:"assignedTo"`
	CurrentAssignment   Nullable[string] `json:"currentAssignment"`
	MaintenanceSchedule *string          `json:"maintenanceSchedule"`
}

type ResourceAssignment struct {
	AssignedTo  string `json:"assignedTo"`
	WorkOrderID string `json:"workorderId"`
}
