package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/fekuna/omnipos-stock-ledger/internal/order")

// FormatOrderNumber renders INV-<year>-<ordinal>, the ordinal padded to three digits.
func FormatOrderNumber(year int, n int64) string {
	return fmt.Sprintf("INV-%d-%03d", year, n)
}

type orderUseCase struct {
	repo   order.Repository
	txm    ledger.TxManager
	writer *ledger.Writer
	logger logger.ZapLogger
	now    func() time.Time
}

func NewOrderUseCase(repo order.Repository, txm ledger.TxManager, writer *ledger.Writer, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:   repo,
		txm:    txm,
		writer: writer,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validateCreate(in *dto.CreateOrderInput) error {
	if strings.TrimSpace(in.CustomerID) == "" {
		return apperror.Validation("customer id is required")
	}
	if len(in.Lines) == 0 {
		return apperror.Validation("an order needs at least one line")
	}
	for i, l := range in.Lines {
		if l.ItemID == "" {
			return apperror.Validation("line %d: item id is required", i+1)
		}
		if l.Quantity <= 0 {
			return apperror.Validation("line %d: quantity must be positive", i+1)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return apperror.Validation("line %d: unit price must not be negative", i+1)
		}
		if l.DiscountPercentage.IsNegative() || l.DiscountAmount.IsNegative() {
			return apperror.Validation("line %d: discounts must not be negative", i+1)
		}
	}
	for name, v := range map[string]decimal.Decimal{
		"tax percentage":      in.TaxPercentage,
		"tax amount":          in.TaxAmount,
		"discount percentage": in.DiscountPercentage,
		"discount amount":     in.DiscountAmount,
		"payment amount":      in.PaymentAmount,
	} {
		if v.IsNegative() {
			return apperror.Validation("%s must not be negative", name)
		}
	}
	switch in.Status {
	case model.OrderDraft, model.OrderUnpaid, model.OrderPaid:
	default:
		return apperror.Validation("invalid initial status %q", in.Status)
	}
	return nil
}

// CreateOrder finalizes an order: numbering, persistence and, unless it is a draft, one
// stock decrement per line, all in a single transaction.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	ctx, span := tracer.Start(ctx, "order.CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("customer.id", input.CustomerID),
		attribute.Int("order.lines", len(input.Lines)),
		attribute.String("order.status", string(input.Status)),
	)

	if input.Status == "" {
		input.Status = model.OrderUnpaid
	}
	if err := validateCreate(input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var (
		created   *model.Order
		movements []*model.Movement
		replayed  bool
	)
	err := uc.writer.Run(ctx, func(ctx context.Context) error {
		created, movements, replayed = nil, nil, false
		return uc.txm.WithinTx(ctx, func(ctx context.Context, tx ledger.Tx) error {
			if input.IdempotencyKey != "" {
				existing, err := tx.FindOrderByIdempotencyKey(ctx, input.IdempotencyKey)
				if err != nil {
					return err
				}
				if existing != nil {
					created, replayed = existing, true
					return nil
				}
			}

			var err error
			created, movements, err = uc.finalize(ctx, tx, input)
			return err
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if replayed {
		uc.logger.Info("order replayed for idempotency key",
			zap.String("order_id", created.ID),
			zap.String("idempotency_key", input.IdempotencyKey),
		)
		return created, nil
	}

	span.SetAttributes(attribute.String("order.number", created.Number))
	uc.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("order_number", created.Number),
		zap.String("status", string(created.Status)),
		zap.Int("movements", len(movements)),
	)
	uc.writer.Notify(ctx, derefMovements(movements))
	return created, nil
}

func (uc *orderUseCase) finalize(ctx context.Context, tx ledger.Tx, input *dto.CreateOrderInput) (*model.Order, []*model.Movement, error) {
	cust, err := tx.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, nil, err
	}

	// Every item is resolved before anything is written; items whose stock will move are
	// locked in id order.
	movesStock := input.Status.MovesStock()
	itemIDs := make([]string, 0, len(input.Lines))
	for _, l := range input.Lines {
		itemIDs = append(itemIDs, l.ItemID)
	}
	items, err := resolveItems(ctx, tx, itemIDs, movesStock)
	if err != nil {
		return nil, nil, err
	}

	location := orderLocation(cust, input, items)
	if input.Scope != "" && input.Scope != "all" && location != input.Scope {
		return nil, nil, apperror.PermissionDenied("customer", cust.ID)
	}

	now := uc.now()
	o := &model.Order{
		ID:                 uuid.New().String(),
		CustomerID:         cust.ID,
		Lines:              make([]model.OrderLine, len(input.Lines)),
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     input.DiscountAmount,
		TaxPercentage:      input.TaxPercentage,
		TaxAmount:          input.TaxAmount,
		Status:             input.Status,
		PaymentAmount:      input.PaymentAmount,
		PaymentMethod:      input.PaymentMethod,
		PaymentDate:        input.PaymentDate,
		DueDate:            input.DueDate,
		Notes:              input.Notes,
		Location:           location,
		StockApplied:       movesStock,
		CreatedBy:          input.UserID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if input.IdempotencyKey != "" {
		key := input.IdempotencyKey
		o.IdempotencyKey = &key
	}

	subtotal := decimal.Zero
	for i, l := range input.Lines {
		price := items[l.ItemID].UnitPrice
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		total := price.Mul(decimal.NewFromInt(l.Quantity))
		o.Lines[i] = model.OrderLine{
			OrderID:            o.ID,
			LineNo:             i + 1,
			ItemID:             l.ItemID,
			Quantity:           l.Quantity,
			UnitPrice:          price,
			DiscountPercentage: l.DiscountPercentage,
			DiscountAmount:     l.DiscountAmount,
			Total:              total,
		}
		subtotal = subtotal.Add(total)
	}
	// Header tax and discount are recorded but not applied.
	o.Subtotal = subtotal
	o.Total = subtotal
	if o.Status == model.OrderPaid && o.PaymentDate == nil {
		o.PaymentDate = &now
	}

	seq, err := tx.NextOrderNumber(ctx, now.Year())
	if err != nil {
		return nil, nil, err
	}
	o.Number = FormatOrderNumber(now.Year(), seq)

	if err := tx.InsertOrder(ctx, o); err != nil {
		return nil, nil, err
	}

	var movements []*model.Movement
	if movesStock {
		if movements, err = uc.applyLines(ctx, tx, o, input.UserID); err != nil {
			return nil, nil, err
		}
	}
	return o, movements, nil
}

func resolveItems(ctx context.Context, tx ledger.Tx, ids []string, lock bool) (map[string]*model.InventoryItem, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	items := make(map[string]*model.InventoryItem, len(sorted))
	for _, id := range sorted {
		if _, ok := items[id]; ok {
			continue
		}
		var (
			item *model.InventoryItem
			err  error
		)
		if lock {
			item, err = tx.LockItem(ctx, id)
		} else {
			item, err = tx.GetItem(ctx, id)
		}
		if err != nil {
			return nil, err
		}
		items[id] = item
	}
	return items, nil
}

// applyLines takes every line of o out of stock. Items must already be locked by tx.
func (uc *orderUseCase) applyLines(ctx context.Context, tx ledger.Tx, o *model.Order, actor string) ([]*model.Movement, error) {
	movements := make([]*model.Movement, 0, len(o.Lines))
	for _, l := range o.Lines {
		_, mv, err := uc.writer.Apply(ctx, tx, &ledger.MovementRequest{
			ItemID:        l.ItemID,
			Kind:          model.MovementOut,
			Quantity:      l.Quantity,
			ReferenceType: model.ReferenceInvoice,
			ReferenceID:   o.ID,
			Notes:         "Sale - Invoice " + o.Number,
			Actor:         actor,
			Location:      o.Location,
		})
		if err != nil {
			return nil, err
		}
		movements = append(movements, mv)
	}
	return movements, nil
}

// orderLocation prefers the customer's site, then the caller's, then the first item's.
func orderLocation(c *model.Customer, in *dto.CreateOrderInput, items map[string]*model.InventoryItem) string {
	if c.Location != "" && c.Location != "all" {
		return c.Location
	}
	if in.Location != "" && in.Location != "all" {
		return in.Location
	}
	return items[in.Lines[0].ItemID].Location
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return uc.repo.FindOrderByID(ctx, id)
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != "" && !model.OrderStatus(filters.Status).Valid() {
		return nil, 0, apperror.Validation("invalid status filter %q", filters.Status)
	}
	return uc.repo.FindOrders(ctx, filters)
}

// UpdateOrderStatus moves an order along draft -> {unpaid, paid}, unpaid -> {paid, cancelled}.
// Leaving draft takes the lines out of stock; cancelling never puts them back.
func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, input *dto.UpdateOrderStatusInput) (*model.Order, error) {
	ctx, span := tracer.Start(ctx, "order.UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", input.OrderID), attribute.String("order.status", string(input.Status)))

	if !input.Status.Valid() {
		return nil, apperror.Validation("invalid status %q", input.Status)
	}
	if input.PaymentAmount != nil && input.PaymentAmount.IsNegative() {
		return nil, apperror.Validation("payment amount must not be negative")
	}

	var (
		updated   *model.Order
		movements []*model.Movement
	)
	err := uc.writer.Run(ctx, func(ctx context.Context) error {
		updated, movements = nil, nil
		return uc.txm.WithinTx(ctx, func(ctx context.Context, tx ledger.Tx) error {
			o, err := tx.LockOrder(ctx, input.OrderID)
			if err != nil {
				return err
			}
			if !o.Status.CanTransitionTo(input.Status) {
				return apperror.FailedPrecondition("order", o.ID, "cannot change order %s from %s to %s", o.Number, o.Status, input.Status)
			}

			actor := input.UserID
			if actor == "" {
				actor = o.CreatedBy
			}
			if input.Status.MovesStock() && !o.StockApplied {
				ids := make([]string, 0, len(o.Lines))
				for _, l := range o.Lines {
					ids = append(ids, l.ItemID)
				}
				if _, err := resolveItems(ctx, tx, ids, true); err != nil {
					return err
				}
				if movements, err = uc.applyLines(ctx, tx, o, actor); err != nil {
					return err
				}
				o.StockApplied = true
			}

			now := uc.now()
			if input.PaymentAmount != nil {
				o.PaymentAmount = *input.PaymentAmount
			}
			if input.PaymentMethod != nil {
				o.PaymentMethod = input.PaymentMethod
			}
			if input.PaymentDate != nil {
				o.PaymentDate = input.PaymentDate
			}
			if input.Status == model.OrderPaid && o.PaymentDate == nil {
				o.PaymentDate = &now
			}
			o.Status = input.Status
			o.UpdatedAt = now

			if err := tx.UpdateOrder(ctx, o); err != nil {
				return err
			}
			updated = o
			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.String("order_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Int("movements", len(movements)),
	)
	uc.writer.Notify(ctx, derefMovements(movements))
	return updated, nil
}

func derefMovements(in []*model.Movement) []model.Movement {
	out := make([]model.Movement, len(in))
	for i, m := range in {
		out[i] = *m
	}
	return out
}
