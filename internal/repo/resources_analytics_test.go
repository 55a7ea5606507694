package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

func TestResource_AssignThenRelease(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	res, err := r.CreateResource(ctx, models.CreateResourceRequest{ID: "RES-1", Name: "Truck 4", Type: "vehicle"})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, res.Status)

	res, err = r.AssignResource(ctx, "RES-1", models.ResourceAssignment{AssignedTo: "CREW-1", WorkOrderID: "WO-1"})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceInUse, res.Status)
	require.NotNil(t, res.AssignedTo)
	assert.Equal(t, "CREW-1", *res.AssignedTo)
	require.NotNil(t, res.CurrentAssignment)
	assert.Equal(t, "WO-1", *res.CurrentAssignment)

	res, err = r.ReleaseResource(ctx, "RES-1")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, res.Status)
	assert.Nil(t, res.AssignedTo)
	assert.Nil(t, res.CurrentAssignment)
}

func TestResource_AssignWithoutWorkOrder(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	_, err := r.CreateResource(ctx, models.CreateResourceRequest{ID: "RES-1", Name: "Pump", Type: "equipment"})
	require.NoError(t, err)

	res, err := r.AssignResource(ctx, "RES-1", models.ResourceAssignment{AssignedTo: "Team B"})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceInUse, res.Status)
	assert.Nil(t, res.CurrentAssignment)

	_, err = r.AssignResource(ctx, "RES-404", models.ResourceAssignment{})
	assert.ErrorIs(t, err, models.ErrResourceNotFound)
	_, err = r.ReleaseResource(ctx, "RES-404")
	assert.ErrorIs(t, err, models.ErrResourceNotFound)
}

func TestUpdateResource_LeavingMaintenanceStampsService(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)
	_, err := r.CreateResource(ctx, models.CreateResourceRequest{
		ID: "RES-1", Name: "Lift", Type: "equipment", Status: models.ResourceMaintenance,
	})
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	st := models.ResourceAvailable
	res, err := r.UpdateResource(ctx, "RES-1", models.ResourcePatch{Status: &st})
	require.NoError(t, err)
	require.NotNil(t, res.LastMaintenance)
	assert.Equal(t, clk.Now(), *res.LastMaintenance)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	seedComplaint(t, r, "CPL-2", "pothole")
	seedComplaint(t, r, "CPL-3", "streetlight")
	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-1", ComplaintID: "CPL-1", Title: "a"})
	require.NoError(t, err)
	_, err = r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-2", ComplaintID: "CPL-2", Title: "b"})
	require.NoError(t, err)
	_, err = r.SetWorkOrderStatus(ctx, "WO-2", models.WorkOrderStatusUpdate{Status: models.WorkOrderCompleted})
	require.NoError(t, err)
	newItem(t, r, "INV-1", 4)
	newItem(t, r, "INV-2", 2.5)
	_, err = r.CreateCrewMember(ctx, models.CreateCrewRequest{Name: "a", Email: "a@x"})
	require.NoError(t, err)

	s, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		TotalComplaints:      3,
		ActiveWorkorders:     1,
		CompletedWorkorders:  1,
		CrewMembers:          1,
		InventoryItems:       6.5,
		PendingComplaints:    1,
		InProgressComplaints: 1,
		ResolvedComplaints:   1,
	}, s)
}

func TestCategoryStats_EmptyCategoryIsOther(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	// The store does not validate; handlers do.
	seedComplaint(t, r, "CPL-2", "")

	got, err := r.CategoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"pothole": 1, "other": 1}, got)
}

func TestTrends(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)

	clk.Set(time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC))
	seedComplaint(t, r, "", "pothole")
	clk.Set(time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC))
	seedComplaint(t, r, "", "pothole")
	seedComplaint(t, r, "", "drainage")
	clk.Set(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))

	got, err := r.Trends(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []models.TrendPoint{
		{Date: "2026-03-08", Complaints: 1},
		{Date: "2026-03-09", Complaints: 0},
		{Date: "2026-03-10", Complaints: 2},
	}, got)

	got, err = r.Trends(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, repo.DefaultTrendDays)

	got, err = r.Trends(ctx, 10_000)
	require.NoError(t, err)
	assert.Len(t, got, repo.MaxTrendDays)
}

func TestTrends_BucketsInConfiguredZone(t *testing.T) {
	ctx := context.Background()
	// UTC-5 with no DST, so the test does not depend on tzdata.
	loc := time.FixedZone("EST", -5*3600)
	r, clk := newStore(t, repo.WithLocation(loc))

	// 02:00 UTC on the 10th is the evening of the 9th in EST.
	clk.Set(time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC))
	seedComplaint(t, r, "", "pothole")
	clk.Set(time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC))

	got, err := r.Trends(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.TrendPoint{
		{Date: "2026-03-09", Complaints: 1},
		{Date: "2026-03-10", Complaints: 0},
	}, got)
}

func TestStatusViews(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.CreateCrewMember(ctx, models.CreateCrewRequest{ID: "CREW-1", Name: "Ada", Email: "a@x"})
	require.NoError(t, err)
	_, err = r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{
		ID: "WO-1", ComplaintID: "CPL-1", Title: "Patch", AssignedCrew: []string{"CREW-1", "CREW-gone"},
	})
	require.NoError(t, err)

	cv, err := r.ComplaintStatus(ctx, "CPL-1")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, cv.Complaint.Status)
	require.Len(t, cv.WorkOrders, 1)
	assert.Equal(t, "WO-1", cv.WorkOrders[0].ID)

	wv, err := r.WorkOrderStatus(ctx, "WO-1")
	require.NoError(t, err)
	require.Len(t, wv.Crew, 1, "dangling crew ids are skipped")
	assert.Equal(t, "Ada", wv.Crew[0].Name)
	require.NotNil(t, wv.Complaint)
	assert.Equal(t, "Main St", wv.Complaint.Location)

	ov, err := r.StatusOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"total": 1, "pending": 0, "in-progress": 1, "resolved": 0}, ov.Complaints)
	assert.Equal(t, map[string]int{"total": 1, "pending": 1, "in-progress": 0, "completed": 0}, ov.WorkOrders)
	assert.Equal(t, map[string]int{"total": 1, "available": 1, "busy": 0, "on-leave": 0}, ov.Crew)

	_, err = r.ComplaintStatus(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrComplaintNotFound)
	_, err = r.WorkOrderStatus(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrWorkOrderNotFound)
}
