package ledger_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/storage/memory"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]model.Movement
	err   error
}

func (n *recordingNotifier) OnMovementsCommitted(_ context.Context, movements []model.Movement) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, movements)
	return n.err
}

func newStore(t *testing.T, items ...model.InventoryItem) *memory.Store {
	t.Helper()
	s := memory.NewStore()
	for i := range items {
		items[i].CurrentQuantity = items[i].InitialQuantity
		require.NoError(t, s.CreateItem(context.Background(), &items[i]))
	}
	return s
}

func item(id string, qty int64) model.InventoryItem {
	return model.InventoryItem{ID: id, Name: id, Barcode: "bc-" + id, SKU: "sku-" + id, Location: "north", InitialQuantity: qty}
}

func TestApplyMovement_kinds(t *testing.T) {
	cases := []struct {
		name   string
		kind   model.MovementKind
		qty    int64
		want   int64
		change int64
	}{
		{"in adds", model.MovementIn, 4, 14, 4},
		{"out subtracts", model.MovementOut, 3, 7, -3},
		{"adjustment sets absolute", model.MovementAdjustment, 2, 2, -8},
		{"adjustment to zero", model.MovementAdjustment, 0, 0, -10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t, item("a", 10))
			w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())

			got, mv, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{
				ItemID: "a", Kind: tc.kind, Quantity: tc.qty, Actor: "u-1",
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.CurrentQuantity)
			assert.Equal(t, int64(10), mv.PreviousQuantity)
			assert.Equal(t, tc.want, mv.NewQuantity)
			assert.Equal(t, tc.change, mv.QuantityChange)
			assert.Equal(t, tc.qty, mv.Quantity)
			assert.Equal(t, "north", mv.Location)
			assert.Equal(t, "u-1", mv.CreatedBy)
			assert.Equal(t, int64(1), mv.Sequence)
		})
	}
}

func TestApplyMovement_validation(t *testing.T) {
	cases := []ledger.MovementRequest{
		{ItemID: "a", Kind: model.MovementIn, Quantity: 0},
		{ItemID: "a", Kind: model.MovementOut, Quantity: -1},
		{ItemID: "a", Kind: model.MovementAdjustment, Quantity: -1},
		{ItemID: "a", Kind: "transfer", Quantity: 1},
		{ItemID: "", Kind: model.MovementIn, Quantity: 1},
		{ItemID: "a", Kind: model.MovementIn, Quantity: 1, ReferenceType: "gift"},
	}
	for _, req := range cases {
		s := newStore(t, item("a", 10))
		n := &recordingNotifier{}
		w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop(), n)

		req := req
		_, _, err := w.ApplyMovement(context.Background(), &req)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), "%+v", req)

		got, err := s.FindItemByID(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.CurrentQuantity)
		assert.Empty(t, n.calls)
	}
}

func TestApplyMovement_missingItemWritesNothing(t *testing.T) {
	s := newStore(t, item("a", 10))
	n := &recordingNotifier{}
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop(), n)

	_, _, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "ghost", Kind: model.MovementOut, Quantity: 1})
	require.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Contains(t, err.Error(), "ghost")

	items, err := s.ItemsSnapshot(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(10), items[0].CurrentQuantity)

	snap, err := s.DashboardSnapshot(context.Background(), "all", 10)
	require.NoError(t, err)
	assert.Empty(t, snap.RecentMovements)
	assert.Empty(t, n.calls)
}

func TestApplyMovement_negativeStockPolicy(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		s := newStore(t, item("a", 2))
		w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())
		got, _, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: model.MovementOut, Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(-3), got.CurrentQuantity)
	})

	t.Run("rejected", func(t *testing.T) {
		s := newStore(t, item("a", 2))
		w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: false}, logger.NewNop())
		_, _, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: model.MovementOut, Quantity: 5})
		assert.Equal(t, apperror.KindFailedPrecondition, apperror.KindOf(err))

		got, err := s.FindItemByID(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.CurrentQuantity)

		movs, err := s.ListItemMovements(context.Background(), "a")
		require.NoError(t, err)
		assert.Empty(t, movs)
	})
}

func TestApplyMovement_explicitLocation(t *testing.T) {
	s := newStore(t, item("a", 2))
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())

	_, mv, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: model.MovementIn, Quantity: 1, Location: "dock-2"})
	require.NoError(t, err)
	assert.Equal(t, "dock-2", mv.Location)

	_, mv, err = w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: model.MovementIn, Quantity: 1, Location: "all"})
	require.NoError(t, err)
	assert.Equal(t, "north", mv.Location)
}

func TestApplyMovement_notifiesAfterCommit(t *testing.T) {
	s := newStore(t, item("a", 2))
	n := &recordingNotifier{err: errors.New("broker down")}
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop(), n)

	_, mv, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: model.MovementIn, Quantity: 3})
	require.NoError(t, err, "observer failures must not fail the movement")

	require.Len(t, n.calls, 1)
	require.Len(t, n.calls[0], 1)
	assert.Equal(t, mv.ID, n.calls[0][0].ID)
	assert.Equal(t, int64(1), n.calls[0][0].Sequence)
}

// The cached quantity always equals the initial quantity plus every change, and each
// movement starts where the previous one ended.
func TestApplyMovement_chainProperty(t *testing.T) {
	s := newStore(t, item("a", 50))
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())
	rng := rand.New(rand.NewSource(7))
	kinds := []model.MovementKind{model.MovementIn, model.MovementOut, model.MovementAdjustment}

	for i := 0; i < 200; i++ {
		kind := kinds[rng.Intn(len(kinds))]
		qty := int64(rng.Intn(20))
		if kind != model.MovementAdjustment {
			qty++
		}
		_, _, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: "a", Kind: kind, Quantity: qty})
		require.NoError(t, err)
	}

	got, movs, err := s.ItemLedgerSnapshot(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, movs, 200)

	sum := got.InitialQuantity
	prev := got.InitialQuantity
	for i, m := range movs {
		assert.Equal(t, prev, m.PreviousQuantity, "movement %d", i)
		assert.Equal(t, m.PreviousQuantity+m.QuantityChange, m.NewQuantity)
		if i > 0 {
			assert.Greater(t, m.Sequence, movs[i-1].Sequence)
		}
		sum += m.QuantityChange
		prev = m.NewQuantity
	}
	assert.Equal(t, sum, got.CurrentQuantity)
}

func TestApplyMovement_concurrentWritersSerialize(t *testing.T) {
	s := newStore(t, item("a", 10))
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())

	var wg sync.WaitGroup
	for _, req := range []ledger.MovementRequest{
		{ItemID: "a", Kind: model.MovementIn, Quantity: 5},
		{ItemID: "a", Kind: model.MovementOut, Quantity: 3},
	} {
		req := req
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := w.ApplyMovement(context.Background(), &req)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, movs, err := s.ItemLedgerSnapshot(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.CurrentQuantity)
	require.Len(t, movs, 2)
	assert.Equal(t, int64(10), movs[0].PreviousQuantity)
	assert.Equal(t, movs[0].NewQuantity, movs[1].PreviousQuantity)
	assert.Equal(t, int64(12), movs[1].NewQuantity)
}

func TestApplyMovement_manyConcurrentWriters(t *testing.T) {
	s := newStore(t, item("a", 0), item("b", 0))
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		for _, id := range []string{"a", "b"} {
			id := id
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, err := w.ApplyMovement(context.Background(), &ledger.MovementRequest{ItemID: id, Kind: model.MovementIn, Quantity: 2})
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	for _, id := range []string{"a", "b"} {
		got, movs, err := s.ItemLedgerSnapshot(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.CurrentQuantity)
		assert.Len(t, movs, 50)
	}
}

func TestApply_sharesTransaction(t *testing.T) {
	s := newStore(t, item("a", 10))
	w := ledger.NewWriter(s, ledger.Config{AllowNegativeStock: true}, logger.NewNop())

	err := s.WithinTx(context.Background(), func(ctx context.Context, tx ledger.Tx) error {
		_, first, err := w.Apply(ctx, tx, &ledger.MovementRequest{ItemID: "a", Kind: model.MovementOut, Quantity: 4})
		require.NoError(t, err)
		_, second, err := w.Apply(ctx, tx, &ledger.MovementRequest{ItemID: "a", Kind: model.MovementOut, Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, first.NewQuantity, second.PreviousQuantity)
		return errors.New("abort")
	})
	require.Error(t, err)

	got, err := s.FindItemByID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.CurrentQuantity)
}

func TestWithRetry(t *testing.T) {
	t.Run("retries conflicts", func(t *testing.T) {
		calls := 0
		err := ledger.WithRetry(context.Background(), 3, func() error {
			calls++
			if calls < 3 {
				return apperror.Conflict("item", "a", errors.New("deadlock"))
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		err := ledger.WithRetry(context.Background(), 2, func() error {
			calls++
			return apperror.Conflict("item", "a", nil)
		})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := ledger.WithRetry(context.Background(), 5, func() error {
			calls++
			return apperror.NotFound("item", "a")
		})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when context ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		<-ctx.Done()
		calls := 0
		err := ledger.WithRetry(ctx, 10, func() error {
			calls++
			return apperror.Conflict("item", "a", nil)
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
