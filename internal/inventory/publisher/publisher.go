// Package publisher emits committed stock movements to Kafka, keyed by item id so each
// item's movements stay ordered within a partition.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const EventStockMoved = "StockMoved"

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type StockMovedEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   model.Movement `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

type MovementPublisher struct {
	writer MessageWriter
}

func NewMovementPublisher(writer MessageWriter) *MovementPublisher {
	return &MovementPublisher{writer: writer}
}

// OnMovementsCommitted implements ledger.Notifier.
func (p *MovementPublisher) OnMovementsCommitted(ctx context.Context, movements []model.Movement) error {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	headers := make([]kafka.Header, 0, len(carrier))
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msgs := make([]kafka.Message, 0, len(movements))
	for _, m := range movements {
		value, err := json.Marshal(StockMovedEvent{
			EventID:   m.ID,
			EventType: EventStockMoved,
			Payload:   m,
			Timestamp: m.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("marshal movement %s: %w", m.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(m.ItemID),
			Value:   value,
			Headers: headers,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d movements: %w", len(msgs), err)
	}
	return nil
}
