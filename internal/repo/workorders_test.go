package repo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjkatariya/infraFix/internal/models"
	"github.com/sanjkatariya/infraFix/internal/repo"
)

func TestCreateWorkOrder_MissingComplaint(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)

	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ComplaintID: "CPL-404", Title: "Patch"})
	require.ErrorIs(t, err, models.ErrComplaintNotFound)

	all, err := r.ListWorkOrders(ctx, repo.WorkOrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateWorkOrder_OpensComplaint(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)
	_, err := r.CreateComplaint(ctx, models.CreateComplaintRequest{
		ID: "CPL-1", Category: "pothole", Description: "crater", Location: "Elm", Priority: 8,
	})
	require.NoError(t, err)
	clk.Advance(time.Hour)

	w, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)

	assert.Equal(t, models.WorkOrderPending, w.Status)
	assert.Equal(t, 0, w.Progress)
	assert.Equal(t, "crater", w.Description, "description inherited")
	assert.Equal(t, 8.0, w.Priority, "priority inherited")
	assert.Nil(t, w.StartDate)
	assert.Nil(t, w.CompletedDate)
	assert.Equal(t, []string{}, w.AssignedCrew)

	c, err := r.GetComplaint(ctx, "CPL-1")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintInProgress, c.Status)
	assert.Equal(t, 10, c.Progress)
	assert.Equal(t, clk.Now(), c.UpdatedAt)
}

func TestCreateWorkOrder_InheritsFractionalPriority(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	_, err := r.CreateComplaint(ctx, models.CreateComplaintRequest{
		ID: "CPL-1", Category: "pothole", Description: "crater", Location: "Elm", Priority: 8.5,
	})
	require.NoError(t, err)

	w, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)
	assert.Equal(t, 8.5, w.Priority)

	w, err = r.UpdateWorkOrder(ctx, w.ID, models.WorkOrderPatch{Priority: ptr(2.25)})
	require.NoError(t, err)
	assert.Equal(t, 2.25, w.Priority)
}

func TestCreateWorkOrder_ReopensResolvedComplaint(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.SetComplaintStatus(ctx, "CPL-1", models.ComplaintStatusUpdate{Status: models.ComplaintResolved, Progress: ptr(100)})
	require.NoError(t, err)

	_, err = r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ComplaintID: "CPL-1", Title: "Follow-up", Priority: 2})
	require.NoError(t, err)

	c, _ := r.GetComplaint(ctx, "CPL-1")
	assert.Equal(t, models.ComplaintInProgress, c.Status)
	assert.Equal(t, 10, c.Progress)
}

func TestSetWorkOrderStatus_StartDateStampedOnce(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-1", ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)

	clk.Advance(time.Hour)
	first := clk.Now()
	w, err := r.SetWorkOrderStatus(ctx, "WO-1", models.WorkOrderStatusUpdate{Status: models.WorkOrderInProgress, Progress: ptr(30)})
	require.NoError(t, err)
	require.NotNil(t, w.StartDate)
	assert.Equal(t, first, *w.StartDate)
	assert.Equal(t, 30, w.Progress)

	clk.Advance(time.Hour)
	w, err = r.SetWorkOrderStatus(ctx, "WO-1", models.WorkOrderStatusUpdate{Status: models.WorkOrderInProgress})
	require.NoError(t, err)
	assert.Equal(t, first, *w.StartDate)
	assert.Equal(t, clk.Now(), w.UpdatedAt)
}

func TestSetWorkOrderStatus_CompletedCascades(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-1", ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)
	_, err = r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-2", ComplaintID: "CPL-1", Title: "Repaint"})
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)
	w, err := r.SetWorkOrderStatus(ctx, "WO-1", models.WorkOrderStatusUpdate{Status: models.WorkOrderCompleted, Progress: ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, models.WorkOrderCompleted, w.Status)
	assert.Equal(t, 100, w.Progress, "completed forces progress")
	require.NotNil(t, w.CompletedDate)
	assert.Equal(t, clk.Now(), *w.CompletedDate)

	// WO-2 is still pending, the cascade does not look at siblings.
	c, err := r.GetComplaint(ctx, "CPL-1")
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, c.Status)
	assert.Equal(t, 100, c.Progress)
}

func TestUpdateWorkOrder_StatusUsesTransitionRules(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-1", ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)

	status := models.WorkOrderCompleted
	w, err := r.UpdateWorkOrder(ctx, "WO-1", models.WorkOrderPatch{Status: &status, ActualCost: ptr(120.5)})
	require.NoError(t, err)
	assert.Equal(t, 100, w.Progress)
	require.NotNil(t, w.ActualCost)
	assert.InDelta(t, 120.5, *w.ActualCost, 1e-9)

	c, _ := r.GetComplaint(ctx, "CPL-1")
	assert.Equal(t, models.ComplaintResolved, c.Status)
}

func TestUpdateWorkOrder_NotFound(t *testing.T) {
	r, _ := newStore(t)
	_, err := r.UpdateWorkOrder(context.Background(), "WO-9", models.WorkOrderPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, models.ErrWorkOrderNotFound)
	_, err = r.SetWorkOrderStatus(context.Background(), "WO-9", models.WorkOrderStatusUpdate{Status: models.WorkOrderCompleted})
	assert.ErrorIs(t, err, models.ErrWorkOrderNotFound)
}

func TestListWorkOrders_Filters(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	seedComplaint(t, r, "CPL-2", "drainage")
	for _, in := range []models.CreateWorkOrderRequest{
		{ID: "WO-1", ComplaintID: "CPL-1", Title: "a", AssignedCrew: []string{"CREW-1", "CREW-2"}},
		{ID: "WO-2", ComplaintID: "CPL-2", Title: "b", AssignedCrew: []string{"CREW-2"}},
		{ID: "WO-3", ComplaintID: "CPL-2", Title: "c"},
	} {
		_, err := r.CreateWorkOrder(ctx, in)
		require.NoError(t, err)
	}

	got, _ := r.ListWorkOrders(ctx, repo.WorkOrderFilter{CrewID: "CREW-2"})
	assert.Equal(t, []string{"WO-1", "WO-2"}, workOrderIDs(got))

	got, _ = r.ListWorkOrders(ctx, repo.WorkOrderFilter{ComplaintID: "CPL-2"})
	assert.Equal(t, []string{"WO-2", "WO-3"}, workOrderIDs(got))

	got, _ = r.ListWorkOrders(ctx, repo.WorkOrderFilter{ComplaintID: "CPL-2", CrewID: "CREW-1"})
	assert.Empty(t, got)
}

// Completion and the complaint cascade happen under one lock, so a reader
// never sees a completed work order next to an unresolved complaint.
func TestCompletionCascade_Concurrent(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	seedComplaint(t, r, "CPL-1", "pothole")
	_, err := r.CreateWorkOrder(ctx, models.CreateWorkOrderRequest{ID: "WO-1", ComplaintID: "CPL-1", Title: "Patch"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.SetWorkOrderStatus(ctx, "WO-1", models.WorkOrderStatusUpdate{Status: models.WorkOrderCompleted})
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			view, err := r.ComplaintStatus(ctx, "CPL-1")
			if err != nil {
				return
			}
			if view.WorkOrders[0].Status == models.WorkOrderCompleted {
				assert.Equal(t, models.ComplaintResolved, view.Complaint.Status)
			}
		}()
	}
	wg.Wait()

	s, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CompletedWorkorders)
	assert.Equal(t, 1, s.ResolvedComplaints)
}

func workOrderIDs(ws []models.WorkOrder) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}
