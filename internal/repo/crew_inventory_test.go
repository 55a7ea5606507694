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

func TestCreateCrewMember_Defaults(t *testing.T) {
	r, _ := newStore(t)

	c, err := r.CreateCrewMember(context.Background(), models.CreateCrewRequest{Name: "Ada", Email: "ada@city.gov"})
	require.NoError(t, err)
	assert.Equal(t, models.CrewAvailable, c.Status)
	assert.Equal(t, "full-time", c.Availability)
	assert.Zero(t, c.Rating)
	assert.Zero(t, c.TotalJobs)
	assert.Equal(t, []string{}, c.Skills)
	assert.Nil(t, c.CurrentAssignment)
}

func TestSetCrewStatus_OnlyStatusAndAssignment(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	_, err := r.CreateCrewMember(ctx, models.CreateCrewRequest{
		ID: "CREW-1", Name: "Ada", Email: "ada@city.gov", Skills: []string{"asphalt"},
	})
	require.NoError(t, err)

	wo := "WO-1"
	c, err := r.SetCrewStatus(ctx, "CREW-1", models.CrewStatusUpdate{
		Status:            models.CrewBusy,
		CurrentAssignment: models.Nullable[string]{Set: true, Value: &wo},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CrewBusy, c.Status)
	require.NotNil(t, c.CurrentAssignment)
	assert.Equal(t, "WO-1", *c.CurrentAssignment)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, []string{"asphalt"}, c.Skills)

	c, err = r.SetCrewStatus(ctx, "CREW-1", models.CrewStatusUpdate{
		Status:            models.CrewAvailable,
		CurrentAssignment: models.Nullable[string]{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, c.CurrentAssignment)

	_, err = r.SetCrewStatus(ctx, "CREW-404", models.CrewStatusUpdate{Status: models.CrewBusy})
	assert.ErrorIs(t, err, models.ErrCrewNotFound)
}

func TestListCrew_BySkillAndStatus(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	for _, in := range []models.CreateCrewRequest{
		{ID: "CREW-1", Name: "a", Email: "a@x", Skills: []string{"electrical"}},
		{ID: "CREW-2", Name: "b", Email: "b@x", Skills: []string{"asphalt", "electrical"}, Status: models.CrewBusy},
		{ID: "CREW-3", Name: "c", Email: "c@x", Skills: []string{"asphalt"}},
	} {
		_, err := r.CreateCrewMember(ctx, in)
		require.NoError(t, err)
	}

	got, err := r.ListCrew(ctx, repo.CrewFilter{Skill: "electrical", Status: models.CrewAvailable})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CREW-1", got[0].ID)
}

func newItem(t *testing.T, r repo.Repo, id string, qty float64) models.InventoryItem {
	t.Helper()
	it, err := r.CreateInventoryItem(context.Background(), models.CreateInventoryRequest{
		ID: id, Name: "Cold patch", Category: "asphalt", Quantity: ptr(qty),
	})
	require.NoError(t, err)
	return it
}

func TestCreateInventoryItem_Defaults(t *testing.T) {
	r, _ := newStore(t)
	it := newItem(t, r, "", 0)

	assert.Equal(t, "pieces", it.Unit)
	assert.InDelta(t, 10, it.LowStockThreshold, 0)
	assert.Zero(t, it.Quantity)
	assert.Nil(t, it.LastRestocked)
}

func TestUpdateStock(t *testing.T) {
	ctx := context.Background()
	r, clk := newStore(t)
	newItem(t, r, "INV-1", 5)

	clk.Advance(time.Hour)
	it, err := r.UpdateStock(ctx, "INV-1", models.StockUpdate{Action: models.StockAdd, Quantity: ptr(7.0)})
	require.NoError(t, err)
	assert.InDelta(t, 12, it.Quantity, 1e-9)
	require.NotNil(t, it.LastRestocked)
	assert.Equal(t, clk.Now(), *it.LastRestocked)

	it, err = r.UpdateStock(ctx, "INV-1", models.StockUpdate{Action: models.StockSubtract, Quantity: ptr(50.0)})
	require.NoError(t, err)
	assert.Zero(t, it.Quantity, "subtract clamps at zero")

	it, err = r.UpdateStock(ctx, "INV-1", models.StockUpdate{Quantity: ptr(3.0)})
	require.NoError(t, err)
	assert.InDelta(t, 3, it.Quantity, 1e-9, "empty action sets")

	_, err = r.UpdateStock(ctx, "INV-1", models.StockUpdate{Action: models.StockSet})
	assert.ErrorIs(t, err, models.ErrQuantityRequired)

	_, err = r.UpdateStock(ctx, "INV-1", models.StockUpdate{Action: "double", Quantity: ptr(1.0)})
	assert.ErrorIs(t, err, models.ErrInvalidStockAction)

	_, err = r.UpdateStock(ctx, "INV-404", models.StockUpdate{Action: models.StockAdd, Quantity: ptr(1.0)})
	assert.ErrorIs(t, err, models.ErrInventoryNotFound)
}

func TestListInventory_LowStock(t *testing.T) {
	ctx := context.Background()
	r, _ := newStore(t)
	newItem(t, r, "INV-1", 10)
	newItem(t, r, "INV-2", 11)
	_, err := r.CreateInventoryItem(ctx, models.CreateInventoryRequest{
		ID: "INV-3", Name: "Bulb", Category: "lighting", Quantity: ptr(40.0), LowStockThreshold: 50,
	})
	require.NoError(t, err)

	got, err := r.ListInventory(ctx, repo.InventoryFilter{LowStock: true})
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, it := range got {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"INV-1", "INV-3"}, ids)

	got, err = r.ListInventory(ctx, repo.InventoryFilter{Category: "lighting", LowStock: true})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
