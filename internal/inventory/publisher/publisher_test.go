package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestOnMovementsCommitted(t *testing.T) {
	w := &fakeWriter{}
	p := NewMovementPublisher(w)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := p.OnMovementsCommitted(context.Background(), []model.Movement{
		{Sequence: 7, ID: "m-1", ItemID: "item-a", Kind: model.MovementOut, Quantity: 2, QuantityChange: -2, PreviousQuantity: 10, NewQuantity: 8, CreatedAt: at},
		{Sequence: 8, ID: "m-2", ItemID: "item-b", Kind: model.MovementIn, Quantity: 1, QuantityChange: 1, NewQuantity: 1, CreatedAt: at},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, "item-a", string(w.msgs[0].Key))
	var ev StockMovedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "m-1", ev.EventID)
	assert.Equal(t, EventStockMoved, ev.EventType)
	assert.Equal(t, int64(7), ev.Payload.Sequence)
	assert.Equal(t, int64(8), ev.Payload.NewQuantity)
	assert.True(t, at.Equal(ev.Timestamp))
}

func TestOnMovementsCommitted_writeError(t *testing.T) {
	p := NewMovementPublisher(&fakeWriter{err: errors.New("leader not available")})
	err := p.OnMovementsCommitted(context.Background(), []model.Movement{{ID: "m-1", ItemID: "a"}})
	assert.ErrorContains(t, err, "leader not available")
}
