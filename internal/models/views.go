package models

import "time"

// Stats is the dashboard headline block. InventoryItems is the summed
// quantity across all stock lines, not the number of lines.
type Stats struct {
	TotalComplaints      int     `json:"totalComplaints"`
	ActiveWorkorders     int     `json:"activeWorkorders"`
	CompletedWorkorders  int     `json:"completedWorkorders"`
	CrewMembers          int     `json:"crewMembers"`
	InventoryItems       float64 `json:"inventoryItems"`
	PendingComplaints    int     `json:"pendingComplaints"`
	InProgressComplaints int     `json:"inProgressComplaints"`
	ResolvedComplaints   int     `json:"resolvedComplaints"`
}

type TrendPoint struct {
	Date       string `json:"date"`
	Complaints int    `json:"complaints"`
}

type Dashboard struct {
	Stats         Stats          `json:"stats"`
	CategoryStats map[string]int `json:"categoryStats"`
	Trends        []TrendPoint   `json:"trends"`
}

type ComplaintSummary struct {
	ID        string          `json:"id"`
	Status    ComplaintStatus `json:"status"`
	Progress  int             `json:"progress"`
	Category  string          `json:"category"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type WorkOrderSummary struct {
	ID            string          `json:"id"`
	Status        WorkOrderStatus `json:"status"`
	Progress      int             `json:"progress"`
	Title         string          `json:"title"`
	AssignedCrew  []string        `json:"assignedCrew"`
	StartDate     *time.Time      `json:"startDate"`
	CompletedDate *time.Time      `json:"completedDate"`
}

// ComplaintStatusView is what a citizen sees when tracking a complaint.
type ComplaintStatusView struct {
	Complaint  ComplaintSummary   `json:"complaint"`
	WorkOrders []WorkOrderSummary `json:"workorders"`
}

type WorkOrderDetail struct {
	ID            string          `json:"id"`
	Status        WorkOrderStatus `json:"status"`
	Progress      int             `json:"progress"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      float64         `json:"priority"`
	StartDate     *time.Time      `json:"startDate"`
	CompletedDate *time.Time      `json:"completedDate"`
	EstimatedCost *float64        `json:"estimatedCost"`
	ActualCost    *float64        `json:"actualCost"`
}

type ComplaintRef struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// WorkOrderStatusView joins a work order with its crew and parent complaint.
// Crew ids that no longer resolve are skipped.
type WorkOrderStatusView struct {
	WorkOrder WorkOrderDetail `json:"workorder"`
	Crew      []CrewMember    `json:"crew"`
	Complaint *ComplaintRef   `json:"complaint"`
}

// Overview holds per-status counts keyed by the wire status name, plus "total".
type Overview struct {
	Complaints map[string]int `json:"complaints"`
	WorkOrders map[string]int `json:"workorders"`
	Crew       map[string]int `json:"crew"`
}
