// Package memory is an in-process storage backend with the same transactional guarantees
// as the Postgres backend: per-row locks held until commit, all-or-nothing commits, and
// snapshot reads that never see half of a transaction.
package memory

import (
	"context"
	"sync"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"golang.org/x/sync/semaphore"
)

type Store struct {
	mu        sync.RWMutex
	items     map[string]*model.InventoryItem
	movements []model.Movement // ledger order
	movIndex  map[string]int
	orders    map[string]*model.Order
	orderSeq  []string // insertion order
	orderKeys map[string]string
	numbers   map[string]string
	customers map[string]*model.Customer
	counters  map[int]int64
	seq       int64

	locksMu sync.Mutex
	locks   map[string]*rowLock
}

// rowLock counts holders and waiters so idle entries can be dropped.
type rowLock struct {
	sem  *semaphore.Weighted
	refs int
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]*model.InventoryItem),
		movIndex:  make(map[string]int),
		orders:    make(map[string]*model.Order),
		orderKeys: make(map[string]string),
		numbers:   make(map[string]string),
		customers: make(map[string]*model.Customer),
		counters:  make(map[int]int64),
		locks:     make(map[string]*rowLock),
	}
}

func (s *Store) ref(key string) *rowLock {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &rowLock{sem: semaphore.NewWeighted(1)}
		s.locks[key] = l
	}
	l.refs++
	return l
}

func (s *Store) unref(key string, l *rowLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, key)
	}
}

// acquire blocks until key is free or ctx ends. A lock wait that outlives the context
// is reported as Unavailable.
func (s *Store) acquire(ctx context.Context, key string) error {
	l := s.ref(key)
	if err := l.sem.Acquire(ctx, 1); err != nil {
		s.unref(key, l)
		return apperror.Unavailable(err)
	}
	return nil
}

func (s *Store) release(key string) {
	s.locksMu.Lock()
	l := s.locks[key]
	s.locksMu.Unlock()
	l.sem.Release(1)
	s.unref(key, l)
}

func allLocations(location string) bool {
	return location == "" || location == "all"
}

func page(total, pg, size int) (int, int) {
	if size <= 0 {
		return 0, total
	}
	if pg <= 0 {
		pg = 1
	}
	start := (pg - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}
