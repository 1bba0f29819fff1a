package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-ledger/internal/auth"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	stockv1 "github.com/fekuna/omnipos-stock-ledger/pkg/api/stockv1"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errAccessDenied = status.Error(codes.PermissionDenied, "access denied")

type InventoryHandler struct {
	stockv1.UnimplementedInventoryServiceServer
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) CreateItem(ctx context.Context, req *stockv1.CreateItemRequest) (*stockv1.Item, error) {
	user := auth.FromContext(ctx)
	if !user.CanAccess(req.Location) {
		return nil, errAccessDenied
	}

	item, err := h.uc.CreateItem(ctx, &dto.CreateItemInput{
		Name:         req.Name,
		Category:     req.Category,
		Material:     req.Material,
		Color:        req.Color,
		Size:         req.Size,
		RollLength:   req.RollLength,
		UnitPrice:    req.UnitPrice,
		CostPrice:    req.CostPrice,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		Barcode:      req.Barcode,
		SKU:          req.Sku,
		Location:     req.Location,
		Supplier:     req.Supplier,
		Description:  req.Description,
		UserID:       user.Actor(),
	})
	if err != nil {
		return nil, h.toStatus("create item", err)
	}
	return mapItemToProto(item), nil
}

func (h *InventoryHandler) GetItem(ctx context.Context, req *stockv1.GetItemRequest) (*stockv1.Item, error) {
	item, err := h.uc.GetItem(ctx, req.Id)
	if err != nil {
		return nil, h.toStatus("get item", err)
	}
	if !auth.FromContext(ctx).CanAccess(item.Location) {
		return nil, errAccessDenied
	}
	return mapItemToProto(item), nil
}

func (h *InventoryHandler) UpdateItem(ctx context.Context, req *stockv1.UpdateItemRequest) (*stockv1.Item, error) {
	if err := h.checkItemAccess(ctx, req.Id); err != nil {
		return nil, err
	}

	item, err := h.uc.UpdateItem(ctx, &dto.UpdateItemInput{
		ID:           req.Id,
		Name:         req.Name,
		Category:     req.Category,
		Material:     req.Material,
		Color:        req.Color,
		Size:         req.Size,
		RollLength:   req.RollLength,
		UnitPrice:    req.UnitPrice,
		CostPrice:    req.CostPrice,
		MinimumStock: req.MinimumStock,
		MaximumStock: req.MaximumStock,
		Supplier:     req.Supplier,
		Description:  req.Description,
	})
	if err != nil {
		return nil, h.toStatus("update item", err)
	}
	return mapItemToProto(item), nil
}

func (h *InventoryHandler) ListItems(ctx context.Context, req *stockv1.ListItemsRequest) (*stockv1.ListItemsResponse, error) {
	items, count, err := h.uc.ListItems(ctx, &dto.ItemFilters{
		Location: auth.FromContext(ctx).Scope(req.Location),
		Category: req.Category,
		LowStock: req.LowStock,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		return nil, h.toStatus("list items", err)
	}

	entries := make([]*stockv1.Item, len(items))
	for i := range items {
		entries[i] = mapItemToProto(&items[i])
	}
	return &stockv1.ListItemsResponse{
		Items: entries,
		Total: int32(count),
	}, nil
}

func (h *InventoryHandler) AdjustStock(ctx context.Context, req *stockv1.AdjustStockRequest) (*stockv1.AdjustStockResponse, error) {
	if err := h.checkItemAccess(ctx, req.ItemId); err != nil {
		return nil, err
	}
	user := auth.FromContext(ctx)

	item, mv, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		ItemID:        req.ItemId,
		MovementType:  model.MovementKind(req.MovementType),
		Quantity:      req.Quantity,
		ReferenceType: model.ReferenceType(req.ReferenceType),
		ReferenceID:   req.ReferenceId,
		Notes:         req.Notes,
		Location:      req.Location,
		UserID:        user.Actor(),
	})
	if err != nil {
		return nil, h.toStatus("adjust stock", err)
	}
	return &stockv1.AdjustStockResponse{
		Item:     mapItemToProto(item),
		Movement: mapMovementToProto(mv),
	}, nil
}

func (h *InventoryHandler) ListMovements(ctx context.Context, req *stockv1.ListMovementsRequest) (*stockv1.ListMovementsResponse, error) {
	mvs, count, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		Location: auth.FromContext(ctx).Scope(req.Location),
		ItemID:   req.ItemId,
		OrderBy:  req.OrderBy,
		Desc:     req.Desc,
		Limit:    int(req.Limit),
		Offset:   int(req.Offset),
	})
	if err != nil {
		return nil, h.toStatus("list movements", err)
	}
	return &stockv1.ListMovementsResponse{
		Movements: mapMovementsToProto(mvs),
		Total:     int32(count),
	}, nil
}

func (h *InventoryHandler) ListItemMovements(ctx context.Context, req *stockv1.ListItemMovementsRequest) (*stockv1.ListMovementsResponse, error) {
	if err := h.checkItemAccess(ctx, req.ItemId); err != nil {
		return nil, err
	}
	mvs, err := h.uc.ListItemMovements(ctx, req.ItemId)
	if err != nil {
		return nil, h.toStatus("list item movements", err)
	}
	return &stockv1.ListMovementsResponse{
		Movements: mapMovementsToProto(mvs),
		Total:     int32(len(mvs)),
	}, nil
}

func (h *InventoryHandler) GetMovement(ctx context.Context, req *stockv1.GetMovementRequest) (*stockv1.Movement, error) {
	mv, err := h.uc.GetMovement(ctx, req.Id)
	if err != nil {
		return nil, h.toStatus("get movement", err)
	}
	if !auth.FromContext(ctx).CanAccess(mv.Location) {
		return nil, errAccessDenied
	}
	return mapMovementToProto(mv), nil
}

func (h *InventoryHandler) checkItemAccess(ctx context.Context, itemID string) error {
	item, err := h.uc.GetItem(ctx, itemID)
	if err != nil {
		return h.toStatus("get item", err)
	}
	if !auth.FromContext(ctx).CanAccess(item.Location) {
		return errAccessDenied
	}
	return nil
}

func (h *InventoryHandler) toStatus(op string, err error) error {
	if apperror.KindOf(err) == apperror.KindInternal {
		h.logger.Error("inventory handler failed", zap.String("op", op), zap.Error(err))
	}
	return apperror.ToGRPC(err)
}

func mapItemToProto(m *model.InventoryItem) *stockv1.Item {
	if m == nil {
		return nil
	}
	supplier := ""
	if m.Supplier != nil {
		supplier = *m.Supplier
	}
	description := ""
	if m.Description != nil {
		description = *m.Description
	}

	return &stockv1.Item{
		Id:              m.ID,
		Name:            m.Name,
		Category:        m.Category,
		Material:        m.Material,
		Color:           m.Color,
		Size:            m.Size,
		RollLength:      m.RollLength,
		UnitPrice:       m.UnitPrice,
		CostPrice:       m.CostPrice,
		InitialQuantity: m.InitialQuantity,
		CurrentQuantity: m.CurrentQuantity,
		MinimumStock:    m.MinimumStock,
		MaximumStock:    m.MaximumStock,
		Barcode:         m.Barcode,
		Sku:             m.SKU,
		Location:        m.Location,
		Supplier:        supplier,
		Description:     description,
		LowStock:        m.IsLowStock(),
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mapMovementToProto(m *model.Movement) *stockv1.Movement {
	if m == nil {
		return nil
	}
	return &stockv1.Movement{
		Sequence:         m.Sequence,
		Id:               m.ID,
		ItemId:           m.ItemID,
		MovementType:     string(m.Kind),
		Quantity:         m.Quantity,
		QuantityChange:   m.QuantityChange,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		ReferenceType:    string(m.ReferenceType),
		ReferenceId:      m.ReferenceID,
		Notes:            m.Notes,
		Location:         m.Location,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

func mapMovementsToProto(mvs []model.Movement) []*stockv1.Movement {
	out := make([]*stockv1.Movement, len(mvs))
	for i := range mvs {
		out[i] = mapMovementToProto(&mvs[i])
	}
	return out
}
