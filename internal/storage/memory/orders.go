package memory

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

func (s *Store) FindOrderByID(_ context.Context, id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, apperror.NotFound("order", id)
	}
	c := o.Clone()
	return &c, nil
}

// FindOrders lists newest first.
func (s *Store) FindOrders(_ context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	s.mu.RLock()
	out := make([]model.Order, 0)
	for i := len(s.orderSeq) - 1; i >= 0; i-- {
		o := s.orders[s.orderSeq[i]]
		if !allLocations(filters.Location) && o.Location != filters.Location {
			continue
		}
		if filters.Status != "" && string(o.Status) != filters.Status {
			continue
		}
		if filters.CustomerID != "" && o.CustomerID != filters.CustomerID {
			continue
		}
		out = append(out, o.Clone())
	}
	s.mu.RUnlock()

	total := len(out)
	start, end := page(total, filters.Page, filters.PageSize)
	return out[start:end], total, nil
}
