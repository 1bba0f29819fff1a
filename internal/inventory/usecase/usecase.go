package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	writer *ledger.Writer
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, writer *ledger.Writer, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		writer: writer,
		logger: log,
	}
}

func (uc *inventoryUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &model.InventoryItem{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(input.Name),
		Category:        strings.TrimSpace(input.Category),
		Material:        strings.TrimSpace(input.Material),
		Color:           strings.TrimSpace(input.Color),
		Size:            strings.TrimSpace(input.Size),
		RollLength:      input.RollLength,
		UnitPrice:       input.UnitPrice,
		CostPrice:       input.CostPrice,
		InitialQuantity: input.Quantity,
		CurrentQuantity: input.Quantity,
		MinimumStock:    input.MinimumStock,
		MaximumStock:    input.MaximumStock,
		Barcode:         strings.TrimSpace(input.Barcode),
		SKU:             strings.TrimSpace(input.SKU),
		Location:        strings.TrimSpace(input.Location),
		Supplier:        input.Supplier,
		Description:     input.Description,
		CreatedBy:       input.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	uc.logger.Info("inventory item created", zap.String("item_id", item.ID), zap.String("sku", item.SKU))
	return item, nil
}

func validateCreate(in *dto.CreateItemInput) error {
	required := []struct{ name, value string }{
		{"name", in.Name},
		{"category", in.Category},
		{"material", in.Material},
		{"color", in.Color},
		{"size", in.Size},
		{"barcode", in.Barcode},
		{"sku", in.SKU},
		{"location", in.Location},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apperror.Validation("%s is required", f.name)
		}
	}
	if strings.TrimSpace(in.Location) == "all" {
		return apperror.Validation("location %q is reserved", "all")
	}
	if in.UnitPrice.IsNegative() || in.CostPrice.IsNegative() {
		return apperror.Validation("prices must not be negative")
	}
	if in.Quantity < 0 || in.MinimumStock < 0 || in.MaximumStock < 0 {
		return apperror.Validation("stock quantities must not be negative")
	}
	if in.RollLength != nil && *in.RollLength < 0 {
		return apperror.Validation("roll length must not be negative")
	}
	return nil
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	return uc.repo.FindItemByID(ctx, id)
}

func (uc *inventoryUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.InventoryItem, error) {
	item, err := uc.repo.FindItemByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	text := []struct {
		name string
		src  *string
		dst  *string
	}{
		{"name", input.Name, &item.Name},
		{"category", input.Category, &item.Category},
		{"material", input.Material, &item.Material},
		{"color", input.Color, &item.Color},
		{"size", input.Size, &item.Size},
	}
	for _, f := range text {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if v == "" {
			return nil, apperror.Validation("%s must not be empty", f.name)
		}
		*f.dst = v
	}

	if input.RollLength != nil {
		if *input.RollLength < 0 {
			return nil, apperror.Validation("roll length must not be negative")
		}
		item.RollLength = input.RollLength
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, apperror.Validation("unit price must not be negative")
		}
		item.UnitPrice = *input.UnitPrice
	}
	if input.CostPrice != nil {
		if input.CostPrice.IsNegative() {
			return nil, apperror.Validation("cost price must not be negative")
		}
		item.CostPrice = *input.CostPrice
	}
	if input.MinimumStock != nil {
		if *input.MinimumStock < 0 {
			return nil, apperror.Validation("minimum stock must not be negative")
		}
		item.MinimumStock = *input.MinimumStock
	}
	if input.MaximumStock != nil {
		if *input.MaximumStock < 0 {
			return nil, apperror.Validation("maximum stock must not be negative")
		}
		item.MaximumStock = *input.MaximumStock
	}
	if input.Supplier != nil {
		item.Supplier = input.Supplier
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	item.UpdatedAt = time.Now().UTC()

	if err := uc.repo.UpdateItemDetails(ctx, item); err != nil {
		return nil, err
	}
	// Re-read so the quantity reflects any movement committed meanwhile.
	return uc.repo.FindItemByID(ctx, item.ID)
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	return uc.repo.FindItems(ctx, filters)
}

// AdjustStock is the manual stock endpoint: one movement through the ledger writer.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, *model.Movement, error) {
	req := &ledger.MovementRequest{
		ItemID:        input.ItemID,
		Kind:          input.MovementType,
		Quantity:      input.Quantity,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Notes:         input.Notes,
		Actor:         input.UserID,
		Location:      input.Location,
	}

	var (
		item *model.InventoryItem
		mv   *model.Movement
	)
	err := uc.writer.Run(ctx, func(ctx context.Context) error {
		var err error
		item, mv, err = uc.writer.ApplyMovement(ctx, req)
		return err
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			uc.logger.Error("failed to adjust stock", zap.String("item_id", input.ItemID), zap.Error(err))
		}
		return nil, nil, err
	}
	return item, mv, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.Movement, int, error) {
	if filters.OrderBy != "" && !dto.MovementOrderColumns[filters.OrderBy] {
		return nil, 0, apperror.Validation("cannot order movements by %q", filters.OrderBy)
	}
	if filters.Limit < 0 || filters.Offset < 0 {
		return nil, 0, apperror.Validation("limit and offset must not be negative")
	}
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) ListItemMovements(ctx context.Context, itemID string) ([]model.Movement, error) {
	return uc.repo.ListItemMovements(ctx, itemID)
}

func (uc *inventoryUseCase) GetMovement(ctx context.Context, id string) (*model.Movement, error) {
	return uc.repo.FindMovementByID(ctx, id)
}
