package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sanjkatariya/infraFix/internal/models"
)

type InventoryFilter struct {
	Category string
	// LowStock keeps only items at or below their threshold.
	LowStock bool
}

func (f InventoryFilter) match(i *models.InventoryItem) bool {
	if f.Category != "" && i.Category != f.Category {
		return false
	}
	if f.LowStock && !i.IsLowStock() {
		return false
	}
	return true
}

func (m *memRepo) ListInventory(ctx context.Context, f InventoryFilter) ([]models.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := m.inventory.filter(f.match, cloneInventory)
	slog.DebugContext(ctx, "ListInventory ok", "count", len(out), "low_stock", f.LowStock)
	return out, nil
}

func (m *memRepo) GetInventoryItem(_ context.Context, id string) (models.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, ok := m.inventory.get(id)
	if !ok {
		return models.InventoryItem{}, models.ErrInventoryNotFound
	}
	return cloneInventory(*i), nil
}

func (m *memRepo) CreateInventoryItem(ctx context.Context, in models.CreateInventoryRequest) (models.InventoryItem, error) {
	if in.Quantity == nil {
		return models.InventoryItem{}, models.ErrQuantityRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.timestamp()
	id, err := assignID(&m.inventory, models.PrefixInventory, in.ID, now)
	if err != nil {
		return models.InventoryItem{}, err
	}
	item := models.InventoryItem{
		ID:                id,
		Name:              in.Name,
		Description:       nonEmptyPtr(in.Description),
		Category:          in.Category,
		Quantity:          *in.Quantity,
		Unit:              in.Unit,
		Cost:              clonePtr(in.Cost),
		Supplier:          nonEmptyPtr(in.Supplier),
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if item.Unit == "" {
		item.Unit = models.DefaultUnit
	}
	if item.LowStockThreshold <= 0 {
		item.LowStockThreshold = models.DefaultLowStockThreshold
	}
	m.inventory.insert(item)
	slog.DebugContext(ctx, "CreateInventoryItem ok", "id", item.ID, "quantity", item.Quantity)
	return cloneInventory(item), nil
}

func (m *memRepo) UpdateInventoryItem(ctx context.Context, id string, p models.InventoryPatch) (models.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inventory.get(id)
	if !ok {
		return models.InventoryItem{}, models.ErrInventoryNotFound
	}
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Description != nil {
		i.Description = nonEmptyPtr(p.Description)
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Unit != nil && *p.Unit != "" {
		i.Unit = *p.Unit
	}
	if p.Cost != nil {
		i.Cost = clonePtr(p.Cost)
	}
	if p.Supplier != nil {
		i.Supplier = nonEmptyPtr(p.Supplier)
	}
	if p.LowStockThreshold != nil {
		i.LowStockThreshold = *p.LowStockThreshold
	}
	if p.Location != nil {
		i.Location = nonEmptyPtr(p.Location)
	}
	i.UpdatedAt = m.timestamp()
	slog.DebugContext(ctx, "UpdateInventoryItem ok", "id", id)
	return cloneInventory(*i), nil
}

// UpdateStock adjusts quantity. add and subtract treat a missing quantity
// as 0; subtract never goes below zero. set (or no action) needs a quantity.
// Only add counts as a restock.
func (m *memRepo) UpdateStock(ctx context.Context, id string, u models.StockUpdate) (models.InventoryItem, error) {
	action := u.Action
	if action == "" {
		action = models.StockSet
	}
	var delta float64
	if u.Quantity != nil {
		delta = *u.Quantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inventory.get(id)
	if !ok {
		return models.InventoryItem{}, models.ErrInventoryNotFound
	}
	now := m.timestamp()
	switch action {
	case models.StockAdd:
		i.Quantity += delta
		restocked := now
		i.LastRestocked = &restocked
	case models.StockSubtract:
		i.Quantity = max(0, i.Quantity-delta)
	case models.StockSet:
		if u.Quantity == nil {
			return models.InventoryItem{}, models.ErrQuantityRequired
		}
		i.Quantity = *u.Quantity
	default:
		return models.InventoryItem{}, fmt.Errorf("%w: %q", models.ErrInvalidStockAction, action)
	}
	i.UpdatedAt = now
	slog.DebugContext(ctx, "UpdateStock ok", "id", id, "action", action, "quantity", i.Quantity)
	return cloneInventory(*i), nil
}

func (m *memRepo) DeleteInventoryItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inventory.remove(id) {
		return models.ErrInventoryNotFound
	}
	slog.DebugContext(ctx, "DeleteInventoryItem ok", "id", id)
	return nil
}
