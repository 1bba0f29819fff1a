package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const EventOrderRequested = "OrderRequested"

var tracer = otel.Tracer("github.com/fekuna/omnipos-stock-ledger/internal/order/listener")

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// OrderListener turns OrderRequested events into finalized orders. The event id is the
// idempotency key, so a redelivered event replays the order it already created. Events
// without an id are keyed by their topic, partition and offset instead.
type OrderListener struct {
	consumer MessageReader
	uc       order.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewOrderListener(consumer MessageReader, uc order.UseCase, logger logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

type OrderRequestedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	CustomerID         string             `json:"customer_id"`
	Status             string             `json:"status"`
	Location           string             `json:"location"`
	Notes              string             `json:"notes"`
	TaxPercentage      decimal.Decimal    `json:"tax_percentage"`
	TaxAmount          decimal.Decimal    `json:"tax_amount"`
	DiscountPercentage decimal.Decimal    `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal    `json:"discount_amount"`
	PaymentAmount      decimal.Decimal    `json:"payment_amount"`
	PaymentMethod      *string            `json:"payment_method"`
	PaymentDate        *time.Time         `json:"payment_date"`
	DueDate            *time.Time         `json:"due_date"`
	RequestedBy        string             `json:"requested_by"`
	Items              []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ItemID             string           `json:"item_id"`
	Quantity           int64            `json:"quantity"`
	UnitPrice          *decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal  `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal  `json:"discount_amount"`
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order Kafka listener")
	for {
		msg, err := l.consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping order Kafka listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			if !l.sleep(ctx) {
				return
			}
			continue
		}

		if !l.handle(ctx, msg) {
			return
		}
		if err := l.consumer.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			l.logger.Error("Failed to commit kafka message", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// handle processes msg until it succeeds or fails for good. It returns false only when
// ctx ends first, in which case the offset must stay uncommitted.
func (l *OrderListener) handle(ctx context.Context, msg kafka.Message) bool {
	var event OrderRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Int64("offset", msg.Offset), zap.Error(err))
		return true
	}
	if event.EventType != EventOrderRequested {
		return true
	}
	if event.EventID == "" {
		event.EventID = messageKey(msg)
		l.logger.Warn("Order event has no event_id, keying by offset", zap.String("event_id", event.EventID))
	}

	carrier := propagation.MapCarrier{}
	for _, h := range msg.Headers {
		carrier[h.Key] = string(h.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)
	ctx, span := tracer.Start(ctx, "order.listener.OrderRequested",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.String("messaging.message.id", event.EventID),
		),
	)
	defer span.End()

	input := toInput(&event)
	for {
		o, err := l.uc.CreateOrder(ctx, input)
		if err == nil {
			l.logger.Info("Order finalized from event",
				zap.String("event_id", event.EventID),
				zap.String("order_id", o.ID),
				zap.String("order_number", o.Number),
			)
			return true
		}
		if !apperror.IsRetryable(err) {
			l.logger.Error("Dropping order event",
				zap.String("event_id", event.EventID),
				zap.String("reason", apperror.KindOf(err).String()),
				zap.Error(err),
			)
			return true
		}
		l.logger.Warn("Order event failed, retrying", zap.String("event_id", event.EventID), zap.Error(err))
		if !l.sleep(ctx) {
			return false
		}
	}
}

func (l *OrderListener) sleep(ctx context.Context) bool {
	t := time.NewTimer(l.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// messageKey identifies a message by its log position, which redeliveries share.
func messageKey(msg kafka.Message) string {
	return fmt.Sprintf("kafka:%s:%d:%d", msg.Topic, msg.Partition, msg.Offset)
}

func toInput(e *OrderRequestedEvent) *dto.CreateOrderInput {
	lines := make([]dto.OrderLineInput, len(e.Payload.Items))
	for i, it := range e.Payload.Items {
		lines[i] = dto.OrderLineInput{
			ItemID:             it.ItemID,
			Quantity:           it.Quantity,
			UnitPrice:          it.UnitPrice,
			DiscountPercentage: it.DiscountPercentage,
			DiscountAmount:     it.DiscountAmount,
		}
	}
	actor := e.Payload.RequestedBy
	if actor == "" {
		actor = "system"
	}
	return &dto.CreateOrderInput{
		CustomerID:         e.Payload.CustomerID,
		Lines:              lines,
		TaxPercentage:      e.Payload.TaxPercentage,
		TaxAmount:          e.Payload.TaxAmount,
		DiscountPercentage: e.Payload.DiscountPercentage,
		DiscountAmount:     e.Payload.DiscountAmount,
		Status:             model.OrderStatus(e.Payload.Status),
		PaymentAmount:      e.Payload.PaymentAmount,
		PaymentMethod:      e.Payload.PaymentMethod,
		PaymentDate:        e.Payload.PaymentDate,
		DueDate:            e.Payload.DueDate,
		Notes:              e.Payload.Notes,
		Location:           e.Payload.Location,
		IdempotencyKey:     e.EventID,
		UserID:             actor,
	}
}
