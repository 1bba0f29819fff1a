package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

func (s *Store) CreateCustomer(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEmailLocked(c); err != nil {
		return err
	}
	cp := *c
	s.customers[c.ID] = &cp
	return nil
}

func (s *Store) checkEmailLocked(c *model.Customer) error {
	for _, other := range s.customers {
		if other.ID != c.ID && c.Email != "" && strings.EqualFold(other.Email, c.Email) {
			return apperror.AlreadyExists("customer", "email already exists")
		}
	}
	return nil
}

// UpdateCustomer keeps the creator and creation time.
func (s *Store) UpdateCustomer(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.customers[c.ID]
	if !ok {
		return apperror.NotFound("customer", c.ID)
	}
	if err := s.checkEmailLocked(c); err != nil {
		return err
	}
	next := *c
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	*cur = next
	return nil
}

func (s *Store) FindCustomerByID(_ context.Context, id string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, apperror.NotFound("customer", id)
	}
	cp := *c
	return &cp, nil
}

// FindCustomers lists by name.
func (s *Store) FindCustomers(_ context.Context, filters *dto.CustomerFilters) ([]model.Customer, int, error) {
	search := strings.ToLower(strings.TrimSpace(filters.Search))

	s.mu.RLock()
	out := make([]model.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if !allLocations(filters.Location) && c.Location != filters.Location {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) &&
			!strings.Contains(strings.ToLower(c.City), search) {
			continue
		}
		out = append(out, *c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})

	total := len(out)
	start, end := page(total, filters.Page, filters.PageSize)
	return out[start:end], total, nil
}
