package ledger

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/fekuna/omnipos-stock-ledger/internal/ledger")

type MovementRequest struct {
	ItemID        string
	Kind          model.MovementKind
	Quantity      int64
	ReferenceType model.ReferenceType
	ReferenceID   string
	Notes         string
	Actor         string
	// Location tags the movement. Empty or "all" falls back to the item's location.
	Location string
}

type Config struct {
	AllowNegativeStock bool
	// OperationTimeout bounds a whole operation, lock waits and retries included.
	OperationTimeout time.Duration
	MaxRetries       int
}

// Writer is the only mutator of InventoryItem.CurrentQuantity.
type Writer struct {
	txm       TxManager
	cfg       Config
	notifiers []Notifier
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewWriter(txm TxManager, cfg Config, log logger.ZapLogger, notifiers ...Notifier) *Writer {
	return &Writer{
		txm:       txm,
		cfg:       cfg,
		notifiers: notifiers,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run executes fn under the operation timeout and retries it as a unit on conflicts.
func (w *Writer) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if w.cfg.OperationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.OperationTimeout)
		defer cancel()
	}
	return WithRetry(ctx, w.cfg.MaxRetries, func() error { return fn(ctx) })
}

func (w *Writer) Validate(req *MovementRequest) error {
	if req.ItemID == "" {
		return apperror.Validation("item id is required")
	}
	if !req.Kind.Valid() {
		return apperror.Validation("invalid movement type %q", req.Kind)
	}
	if !req.ReferenceType.Valid() {
		return apperror.Validation("invalid reference type %q", req.ReferenceType)
	}
	switch req.Kind {
	case model.MovementIn, model.MovementOut:
		if req.Quantity <= 0 {
			return apperror.Validation("quantity must be positive for %s movements", req.Kind)
		}
	case model.MovementAdjustment:
		if req.Quantity < 0 {
			return apperror.Validation("adjustment quantity must not be negative")
		}
	}
	return nil
}

// Apply performs the movement inside tx. The item stays locked until tx ends, so callers
// applying several movements see each other's results. Nothing is notified; see Notify.
func (w *Writer) Apply(ctx context.Context, tx Tx, req *MovementRequest) (*model.InventoryItem, *model.Movement, error) {
	if err := w.Validate(req); err != nil {
		return nil, nil, err
	}

	item, err := tx.LockItem(ctx, req.ItemID)
	if err != nil {
		return nil, nil, err
	}

	prev := item.CurrentQuantity
	next := model.NextQuantity(req.Kind, prev, req.Quantity)
	if next < 0 && !w.cfg.AllowNegativeStock {
		return nil, nil, apperror.FailedPrecondition("item", item.ID,
			"insufficient stock for item %s: have %d, %s %d", item.ID, prev, req.Kind, req.Quantity)
	}

	now := w.now()
	if err := tx.SetQuantity(ctx, item.ID, next, now); err != nil {
		return nil, nil, err
	}

	location := req.Location
	if location == "" || location == "all" {
		location = item.Location
	}
	mv := &model.Movement{
		ID:               uuid.New().String(),
		ItemID:           item.ID,
		Kind:             req.Kind,
		Quantity:         req.Quantity,
		QuantityChange:   next - prev,
		PreviousQuantity: prev,
		NewQuantity:      next,
		ReferenceType:    req.ReferenceType,
		ReferenceID:      req.ReferenceID,
		Notes:            req.Notes,
		Location:         location,
		CreatedBy:        req.Actor,
		CreatedAt:        now,
	}
	if err := tx.AppendMovement(ctx, mv); err != nil {
		return nil, nil, err
	}

	item.CurrentQuantity = next
	item.UpdatedAt = now
	return item, mv, nil
}

// ApplyMovement runs Apply in its own transaction and notifies observers once it commits.
func (w *Writer) ApplyMovement(ctx context.Context, req *MovementRequest) (*model.InventoryItem, *model.Movement, error) {
	ctx, span := tracer.Start(ctx, "ledger.ApplyMovement")
	defer span.End()
	span.SetAttributes(
		attribute.String("item.id", req.ItemID),
		attribute.String("movement.type", string(req.Kind)),
		attribute.Int64("movement.quantity", req.Quantity),
	)

	if err := w.Validate(req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	var (
		item *model.InventoryItem
		mv   *model.Movement
	)
	err := w.txm.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		var err error
		item, mv, err = w.Apply(ctx, tx, req)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	w.logger.Info("stock movement applied",
		zap.String("item_id", item.ID),
		zap.String("type", string(mv.Kind)),
		zap.Int64("previous", mv.PreviousQuantity),
		zap.Int64("new", mv.NewQuantity),
		zap.Int64("seq", mv.Sequence),
	)
	w.Notify(ctx, []model.Movement{*mv})
	return item, mv, nil
}

// Notify hands committed movements to every observer. Observer failures are logged only;
// the movements are already durable.
func (w *Writer) Notify(ctx context.Context, movements []model.Movement) {
	if len(movements) == 0 {
		return
	}
	for _, n := range w.notifiers {
		if err := n.OnMovementsCommitted(ctx, movements); err != nil {
			w.logger.Warn("movement observer failed", zap.Int("movements", len(movements)), zap.Error(err))
		}
	}
}
