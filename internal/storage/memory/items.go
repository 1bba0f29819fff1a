package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

func (s *Store) CreateItem(_ context.Context, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; ok {
		return apperror.AlreadyExists("item", fmt.Sprintf("item %s already exists", item.ID))
	}
	if err := s.checkUniqueLocked(item); err != nil {
		return err
	}
	c := *item
	s.items[item.ID] = &c
	return nil
}

// UpdateItemDetails writes everything except quantities and location.
func (s *Store) UpdateItemDetails(_ context.Context, item *model.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[item.ID]
	if !ok {
		return apperror.NotFound("item", item.ID)
	}
	if err := s.checkUniqueLocked(item); err != nil {
		return err
	}

	next := *item
	next.InitialQuantity = cur.InitialQuantity
	next.CurrentQuantity = cur.CurrentQuantity
	next.Location = cur.Location
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	*cur = next
	return nil
}

func (s *Store) checkUniqueLocked(item *model.InventoryItem) error {
	for _, other := range s.items {
		if other.ID == item.ID {
			continue
		}
		if item.Barcode != "" && other.Barcode == item.Barcode {
			return apperror.AlreadyExists("item", "barcode already exists")
		}
		if item.SKU != "" && other.SKU == item.SKU {
			return apperror.AlreadyExists("item", "sku already exists")
		}
	}
	return nil
}

func (s *Store) FindItemByID(_ context.Context, id string) (*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, apperror.NotFound("item", id)
	}
	c := *item
	return &c, nil
}

func (s *Store) FindItems(_ context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	s.mu.RLock()
	items := make([]model.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if !allLocations(filters.Location) && item.Location != filters.Location {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(item.Category, filters.Category) {
			continue
		}
		if filters.LowStock && !item.IsLowStock() {
			continue
		}
		items = append(items, *item)
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	total := len(items)
	start, end := page(total, filters.Page, filters.PageSize)
	return items[start:end], total, nil
}

func (s *Store) ListMovements(_ context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error) {
	s.mu.RLock()
	out := make([]model.Movement, 0)
	for _, m := range s.movements {
		if !allLocations(filters.Location) && m.Location != filters.Location {
			continue
		}
		if filters.ItemID != "" && m.ItemID != filters.ItemID {
			continue
		}
		out = append(out, m)
	}
	s.mu.RUnlock()

	less := movementLess(filters.OrderBy)
	sort.SliceStable(out, func(i, j int) bool {
		if filters.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	total := len(out)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := total
	if filters.Limit > 0 && start+filters.Limit < total {
		end = start + filters.Limit
	}
	return out[start:end], total, nil
}

func movementLess(orderBy string) func(a, b model.Movement) bool {
	switch orderBy {
	case "quantity":
		return func(a, b model.Movement) bool {
			if a.Quantity != b.Quantity {
				return a.Quantity < b.Quantity
			}
			return a.Sequence < b.Sequence
		}
	case "movement_type":
		return func(a, b model.Movement) bool {
			if a.Kind != b.Kind {
				return a.Kind < b.Kind
			}
			return a.Sequence < b.Sequence
		}
	default:
		return func(a, b model.Movement) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.Sequence < b.Sequence
		}
	}
}

// ListItemMovements returns the item's movements in ledger order.
func (s *Store) ListItemMovements(_ context.Context, itemID string) ([]model.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.items[itemID]; !ok {
		return nil, apperror.NotFound("item", itemID)
	}
	return s.itemMovementsLocked(itemID), nil
}

func (s *Store) itemMovementsLocked(itemID string) []model.Movement {
	out := make([]model.Movement, 0)
	for _, m := range s.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) FindMovementByID(_ context.Context, id string) (*model.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.movIndex[id]
	if !ok {
		return nil, apperror.NotFound("movement", id)
	}
	m := s.movements[idx]
	return &m, nil
}
