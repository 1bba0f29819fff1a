package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
)

func itemLock(id string) string   { return "item:" + id }
func orderLock(id string) string  { return "order:" + id }
func keyLock(key string) string   { return "idempotency:" + key }
func counterLock(year int) string { return fmt.Sprintf("counter:%d", year) }

type stagedQty struct {
	qty int64
	at  time.Time
}

type tx struct {
	s    *Store
	held []string
	has  map[string]bool

	items      map[string]*model.InventoryItem
	quantities map[string]stagedQty
	movements  []*model.Movement
	inserts    []*model.Order
	updates    map[string]*model.Order
	counters   map[int]int64
}

// WithinTx implements ledger.TxManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	t := &tx{
		s:          s,
		has:        make(map[string]bool),
		items:      make(map[string]*model.InventoryItem),
		quantities: make(map[string]stagedQty),
		updates:    make(map[string]*model.Order),
		counters:   make(map[int]int64),
	}
	defer t.releaseAll()

	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperror.Unavailable(err)
	}
	return t.commit()
}

func (t *tx) lock(ctx context.Context, key string) error {
	if t.has[key] {
		return nil
	}
	if err := t.s.acquire(ctx, key); err != nil {
		return err
	}
	t.has[key] = true
	t.held = append(t.held, key)
	return nil
}

func (t *tx) releaseAll() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.s.release(t.held[i])
	}
	t.held = nil
}

func (t *tx) LockItem(ctx context.Context, itemID string) (*model.InventoryItem, error) {
	if staged, ok := t.items[itemID]; ok {
		c := *staged
		return &c, nil
	}
	if err := t.lock(ctx, itemLock(itemID)); err != nil {
		return nil, err
	}

	t.s.mu.RLock()
	item, ok := t.s.items[itemID]
	var c model.InventoryItem
	if ok {
		c = *item
	}
	t.s.mu.RUnlock()
	if !ok {
		return nil, apperror.NotFound("item", itemID)
	}

	t.items[itemID] = &c
	out := c
	return &out, nil
}

func (t *tx) GetItem(ctx context.Context, itemID string) (*model.InventoryItem, error) {
	if staged, ok := t.items[itemID]; ok {
		c := *staged
		return &c, nil
	}
	return t.s.FindItemByID(ctx, itemID)
}

func (t *tx) SetQuantity(_ context.Context, itemID string, qty int64, at time.Time) error {
	staged, ok := t.items[itemID]
	if !ok {
		return fmt.Errorf("set quantity of item %s: item not locked", itemID)
	}
	staged.CurrentQuantity = qty
	staged.UpdatedAt = at
	t.quantities[itemID] = stagedQty{qty: qty, at: at}
	return nil
}

func (t *tx) AppendMovement(_ context.Context, m *model.Movement) error {
	if _, ok := t.items[m.ItemID]; !ok {
		return fmt.Errorf("append movement for item %s: item not locked", m.ItemID)
	}
	t.movements = append(t.movements, m)
	return nil
}

func (t *tx) NextOrderNumber(ctx context.Context, year int) (int64, error) {
	if err := t.lock(ctx, counterLock(year)); err != nil {
		return 0, err
	}
	v, ok := t.counters[year]
	if !ok {
		t.s.mu.RLock()
		v = t.s.counters[year]
		t.s.mu.RUnlock()
	}
	v++
	t.counters[year] = v
	return v, nil
}

func (t *tx) InsertOrder(_ context.Context, o *model.Order) error {
	t.s.mu.RLock()
	_, dupNumber := t.s.numbers[o.Number]
	dupKey := false
	if o.IdempotencyKey != nil {
		_, dupKey = t.s.orderKeys[*o.IdempotencyKey]
	}
	t.s.mu.RUnlock()

	if dupKey {
		return apperror.Conflict("order", *o.IdempotencyKey, fmt.Errorf("idempotency key already used"))
	}
	if dupNumber {
		return apperror.AlreadyExists("order", fmt.Sprintf("order number %s already exists", o.Number))
	}
	c := o.Clone()
	t.inserts = append(t.inserts, &c)
	return nil
}

func (t *tx) FindOrderByIdempotencyKey(ctx context.Context, key string) (*model.Order, error) {
	if err := t.lock(ctx, keyLock(key)); err != nil {
		return nil, err
	}
	for _, o := range t.inserts {
		if o.IdempotencyKey != nil && *o.IdempotencyKey == key {
			c := o.Clone()
			return &c, nil
		}
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	id, ok := t.s.orderKeys[key]
	if !ok {
		return nil, nil
	}
	c := t.s.orders[id].Clone()
	return &c, nil
}

func (t *tx) LockOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if err := t.lock(ctx, orderLock(orderID)); err != nil {
		return nil, err
	}
	if o, ok := t.updates[orderID]; ok {
		c := o.Clone()
		return &c, nil
	}
	for _, o := range t.inserts {
		if o.ID == orderID {
			c := o.Clone()
			return &c, nil
		}
	}
	return t.s.FindOrderByID(ctx, orderID)
}

func (t *tx) UpdateOrder(_ context.Context, o *model.Order) error {
	for i, ins := range t.inserts {
		if ins.ID == o.ID {
			c := o.Clone()
			t.inserts[i] = &c
			return nil
		}
	}
	if !t.has[orderLock(o.ID)] {
		return fmt.Errorf("update order %s: order not locked", o.ID)
	}
	c := o.Clone()
	t.updates[o.ID] = &c
	return nil
}

func (t *tx) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	return t.s.FindCustomerByID(ctx, customerID)
}

// commit publishes every staged write under the store write lock, so readers see all of
// them or none.
func (t *tx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range t.inserts {
		if o.IdempotencyKey != nil {
			if _, ok := s.orderKeys[*o.IdempotencyKey]; ok {
				return apperror.Conflict("order", *o.IdempotencyKey, fmt.Errorf("idempotency key already used"))
			}
		}
		if _, ok := s.numbers[o.Number]; ok {
			return apperror.AlreadyExists("order", fmt.Sprintf("order number %s already exists", o.Number))
		}
	}

	for id, q := range t.quantities {
		item := s.items[id]
		item.CurrentQuantity = q.qty
		item.UpdatedAt = q.at
	}
	for _, m := range t.movements {
		s.seq++
		m.Sequence = s.seq
		s.movIndex[m.ID] = len(s.movements)
		s.movements = append(s.movements, *m)
	}
	for _, o := range t.inserts {
		s.orders[o.ID] = o
		s.orderSeq = append(s.orderSeq, o.ID)
		s.numbers[o.Number] = o.ID
		if o.IdempotencyKey != nil {
			s.orderKeys[*o.IdempotencyKey] = o.ID
		}
	}
	for id, o := range t.updates {
		s.orders[id] = o
	}
	for year, v := range t.counters {
		s.counters[year] = v
	}
	return nil
}
