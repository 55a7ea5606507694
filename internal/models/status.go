package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in-progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

// complaintStatusCodes is the numeric encoding some clients send (0/1/2).
var complaintStatusCodes = map[int64]ComplaintStatus{
	0: ComplaintPending,
	1: ComplaintInProgress,
	2: ComplaintResolved,
}

// UnmarshalJSON accepts the canonical strings, their spelling variants
// ("in progress", "in_progress", "inprogress") and the numeric codes 0/1/2.
func (s *ComplaintStatus) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '"' && !bytes.Equal(b, []byte("null")) {
		n, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid complaint status %s", b)
		}
		st, ok := complaintStatusCodes[n]
		if !ok {
			return fmt.Errorf("invalid complaint status %d", n)
		}
		*s = st
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = ComplaintStatus(normalizeStatus(raw))
	return nil
}

type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderInProgress WorkOrderStatus = "in-progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
)

func (s *WorkOrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("invalid workorder status %s", b)
	}
	*s = WorkOrderStatus(normalizeStatus(raw))
	return nil
}

type CrewStatus string

const (
	CrewAvailable CrewStatus = "available"
	CrewBusy      CrewStatus = "busy"
	CrewOnLeave   CrewStatus = "on-leave"
)

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceInUse       ResourceStatus = "in-use"
	ResourceMaintenance ResourceStatus = "maintenance"
)

// normalizeStatus lowercases and folds the separators clients use for
// hyphenated statuses into a single "-".
func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "in progress", "in_progress", "inprogress":
		return "in-progress"
	case "on leave", "on_leave", "onleave":
		return "on-leave"
	case "in use", "in_use", "inuse":
		return "in-use"
	}
	return s
}

// Coordinates is an optional geo point attached to a complaint.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UnmarshalJSON accepts {"lat","lng"}, {"latitude","longitude"},
// [lat, lng] and the "lat,lng" string the mobile form produces.
func (c *Coordinates) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return fmt.Errorf("invalid coordinates %q", s)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q", parts[0])
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q", parts[1])
		}
		c.Lat, c.Lng = lat, lng
		return nil
	case '[':
		var pair []float64
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("invalid coordinates %s", b)
		}
		c.Lat, c.Lng = pair[0], pair[1]
		return nil
	}
	var obj struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Lon       *float64 `json:"lon"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	lat := firstSet(obj.Lat, obj.Latitude)
	lng := firstSet(obj.Lng, obj.Lon, obj.Longitude)
	if lat == nil || lng == nil {
		return fmt.Errorf("invalid coordinates %s", b)
	}
	c.Lat, c.Lng = *lat, *lng
	return nil
}

func firstSet(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
