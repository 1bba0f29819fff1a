package memory

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

// Snapshot reads hold the store read lock for their whole duration; commits take the
// write lock, so a snapshot sees each transaction entirely or not at all.

func (s *Store) ItemsSnapshot(_ context.Context, location string) ([]model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemsLocked(location), nil
}

func (s *Store) itemsLocked(location string) []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if allLocations(location) || item.Location == location {
			out = append(out, *item)
		}
	}
	return out
}

func (s *Store) OrdersSnapshot(_ context.Context, location string, from, to *time.Time) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersLocked(location, from, to), nil
}

func (s *Store) ordersLocked(location string, from, to *time.Time) []model.Order {
	out := make([]model.Order, 0)
	for _, id := range s.orderSeq {
		o := s.orders[id]
		if !allLocations(location) && o.Location != location {
			continue
		}
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && o.CreatedAt.After(*to) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

func (s *Store) ItemLedgerSnapshot(_ context.Context, itemID string) (*model.InventoryItem, []model.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, nil, apperror.NotFound("item", itemID)
	}
	c := *item
	return &c, s.itemMovementsLocked(itemID), nil
}

func (s *Store) DashboardSnapshot(_ context.Context, location string, recent int) (*dto.DashboardSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &dto.DashboardSnapshot{
		Items:  s.itemsLocked(location),
		Orders: s.ordersLocked(location, nil, nil),
	}
	for _, c := range s.customers {
		if allLocations(location) || c.Location == location {
			snap.CustomerCount++
		}
	}
	for i := len(s.movements) - 1; i >= 0 && len(snap.RecentMovements) < recent; i-- {
		m := s.movements[i]
		if allLocations(location) || m.Location == location {
			snap.RecentMovements = append(snap.RecentMovements, m)
		}
	}
	return snap, nil
}
