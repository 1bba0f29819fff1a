package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/auth"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	stockv1 "github.com/fekuna/omnipos-stock-ledger/pkg/api/stockv1"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errAccessDenied = status.Error(codes.PermissionDenied, "access denied")

type OrderHandler struct {
	stockv1.UnimplementedOrderServiceServer
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) CreateOrder(ctx context.Context, req *stockv1.CreateOrderRequest) (*stockv1.Order, error) {
	user := auth.FromContext(ctx)
	location := req.Location
	if location == "" && user.Location != auth.AllLocations {
		location = user.Location
	}
	if location != "" && !user.CanAccess(location) {
		return nil, errAccessDenied
	}

	lines := make([]dto.OrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l == nil {
			continue
		}
		lines = append(lines, dto.OrderLineInput{
			ItemID:             l.ItemId,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DiscountPercentage: l.DiscountPercentage,
			DiscountAmount:     l.DiscountAmount,
		})
	}

	o, err := h.uc.CreateOrder(ctx, &dto.CreateOrderInput{
		CustomerID:         req.CustomerId,
		Lines:              lines,
		TaxPercentage:      req.TaxPercentage,
		TaxAmount:          req.TaxAmount,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		Status:             model.OrderStatus(req.Status),
		PaymentAmount:      req.PaymentAmount,
		PaymentMethod:      req.PaymentMethod,
		PaymentDate:        req.PaymentDate,
		DueDate:            req.DueDate,
		Notes:              req.Notes,
		Location:           location,
		IdempotencyKey:     req.IdempotencyKey,
		UserID:             user.Actor(),
		Scope:              user.Location,
	})
	if err != nil {
		return nil, h.toStatus("create order", err)
	}
	// a replayed idempotency key may name another site's order
	if !user.CanAccess(o.Location) {
		return nil, errAccessDenied
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) GetOrder(ctx context.Context, req *stockv1.GetOrderRequest) (*stockv1.Order, error) {
	o, err := h.uc.GetOrder(ctx, req.Id)
	if err != nil {
		return nil, h.toStatus("get order", err)
	}
	if !auth.FromContext(ctx).CanAccess(o.Location) {
		return nil, errAccessDenied
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) ListOrders(ctx context.Context, req *stockv1.ListOrdersRequest) (*stockv1.ListOrdersResponse, error) {
	orders, total, err := h.uc.ListOrders(ctx, &dto.OrderFilters{
		Location:   auth.FromContext(ctx).Scope(req.Location),
		Status:     req.Status,
		CustomerID: req.CustomerId,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		return nil, h.toStatus("list orders", err)
	}

	out := make([]*stockv1.Order, len(orders))
	for i := range orders {
		out[i] = mapOrderToProto(&orders[i])
	}
	return &stockv1.ListOrdersResponse{Orders: out, Total: int32(total)}, nil
}

func (h *OrderHandler) UpdateOrderStatus(ctx context.Context, req *stockv1.UpdateOrderStatusRequest) (*stockv1.Order, error) {
	user := auth.FromContext(ctx)
	current, err := h.uc.GetOrder(ctx, req.Id)
	if err != nil {
		return nil, h.toStatus("update order status", err)
	}
	if !user.CanAccess(current.Location) {
		return nil, errAccessDenied
	}

	o, err := h.uc.UpdateOrderStatus(ctx, &dto.UpdateOrderStatusInput{
		OrderID:       req.Id,
		Status:        model.OrderStatus(req.Status),
		PaymentAmount: req.PaymentAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		UserID:        user.Actor(),
	})
	if err != nil {
		return nil, h.toStatus("update order status", err)
	}
	return mapOrderToProto(o), nil
}

func (h *OrderHandler) toStatus(op string, err error) error {
	if apperror.KindOf(err) == apperror.KindInternal {
		h.logger.Error("order handler failed", zap.String("op", op), zap.Error(err))
	}
	return apperror.ToGRPC(err)
}

func mapOrderToProto(o *model.Order) *stockv1.Order {
	lines := make([]*stockv1.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = &stockv1.OrderLine{
			LineNo:             int32(l.LineNo),
			ItemId:             l.ItemID,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DiscountPercentage: l.DiscountPercentage,
			DiscountAmount:     l.DiscountAmount,
			Total:              l.Total,
		}
	}
	method := ""
	if o.PaymentMethod != nil {
		method = *o.PaymentMethod
	}
	return &stockv1.Order{
		Id:                 o.ID,
		OrderNumber:        o.Number,
		CustomerId:         o.CustomerID,
		Lines:              lines,
		Subtotal:           o.Subtotal,
		DiscountPercentage: o.DiscountPercentage,
		DiscountAmount:     o.DiscountAmount,
		TaxPercentage:      o.TaxPercentage,
		TaxAmount:          o.TaxAmount,
		Total:              o.Total,
		Status:             string(o.Status),
		PaymentAmount:      o.PaymentAmount,
		PaymentMethod:      method,
		PaymentDate:        o.PaymentDate,
		DueDate:            o.DueDate,
		Notes:              o.Notes,
		Location:           o.Location,
		StockApplied:       o.StockApplied,
		CreatedBy:          o.CreatedBy,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
