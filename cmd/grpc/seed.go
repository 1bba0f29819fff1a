package main

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer"
	custDTO "github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory"
	invDTO "github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order"
	orderDTO "github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	"github.com/shopspring/decimal"
)

const seedActor = "seed"

// seed loads a small demo data set through the usecases so every invariant holds from the
// first request.
func seed(ctx context.Context, custUC customer.UseCase, invUC inventory.UseCase, orderUC order.UseCase) error {
	customers := []custDTO.CreateCustomerInput{
		{Name: "Rumah Karpet", Email: "orders@rumahkarpet.example", City: "Jakarta", Location: "jakarta", CreditLimit: decimal.NewFromInt(50000)},
		{Name: "Surabaya Interiors", Email: "buy@sbyinteriors.example", City: "Surabaya", Location: "surabaya", CreditLimit: decimal.NewFromInt(20000)},
	}
	customerIDs := make(map[string]string)
	for i := range customers {
		customers[i].UserID = seedActor
		c, err := custUC.CreateCustomer(ctx, &customers[i])
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", customers[i].Email, err)
		}
		customerIDs[c.Location] = c.ID
	}

	items := []invDTO.CreateItemInput{
		{Name: "Persian Red 2x3", Category: "rug", Material: "wool", Color: "red", Size: "2x3", UnitPrice: decimal.NewFromInt(150), CostPrice: decimal.NewFromInt(90), Quantity: 25, MinimumStock: 5, MaximumStock: 60, Barcode: "8990000000011", SKU: "RUG-PER-RED-23", Location: "jakarta"},
		{Name: "Kilim Blue 1x2", Category: "rug", Material: "cotton", Color: "blue", Size: "1x2", UnitPrice: decimal.NewFromInt(60), CostPrice: decimal.NewFromInt(32), Quantity: 40, MinimumStock: 10, MaximumStock: 100, Barcode: "8990000000028", SKU: "RUG-KIL-BLU-12", Location: "jakarta"},
		{Name: "Shaggy Grey Roll", Category: "carpet", Material: "polyester", Color: "grey", Size: "4m", UnitPrice: decimal.NewFromInt(35), CostPrice: decimal.NewFromInt(18), Quantity: 8, MinimumStock: 10, MaximumStock: 50, Barcode: "8990000000035", SKU: "CRP-SHG-GRY-4M", Location: "surabaya"},
	}
	itemIDs := make([]string, len(items))
	for i := range items {
		items[i].UserID = seedActor
		it, err := invUC.CreateItem(ctx, &items[i])
		if err != nil {
			return fmt.Errorf("seed item %s: %w", items[i].SKU, err)
		}
		itemIDs[i] = it.ID
	}

	if _, _, err := invUC.AdjustStock(ctx, &invDTO.AdjustStockInput{
		ItemID:        itemIDs[2],
		MovementType:  model.MovementIn,
		Quantity:      12,
		ReferenceType: model.ReferencePurchase,
		ReferenceID:   "PO-0001",
		Notes:         "Initial restock",
		UserID:        seedActor,
	}); err != nil {
		return fmt.Errorf("seed restock: %w", err)
	}

	orders := []orderDTO.CreateOrderInput{
		{
			CustomerID: customerIDs["jakarta"],
			Status:     model.OrderPaid,
			Lines: []orderDTO.OrderLineInput{
				{ItemID: itemIDs[0], Quantity: 2},
				{ItemID: itemIDs[1], Quantity: 3},
			},
		},
		{
			CustomerID: customerIDs["surabaya"],
			Status:     model.OrderUnpaid,
			Lines:      []orderDTO.OrderLineInput{{ItemID: itemIDs[2], Quantity: 6}},
		},
		{
			CustomerID: customerIDs["jakarta"],
			Status:     model.OrderDraft,
			Lines:      []orderDTO.OrderLineInput{{ItemID: itemIDs[1], Quantity: 1}},
		},
	}
	for i := range orders {
		orders[i].UserID = seedActor
		if _, err := orderUC.CreateOrder(ctx, &orders[i]); err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
	}
	return nil
}
