package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

func (s *Store) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory_items (
            id, name, category, material, color, size, roll_length,
            unit_price, cost_price, initial_quantity, current_quantity,
            minimum_stock, maximum_stock, barcode, sku, location,
            supplier, description, created_by, created_at, updated_at
        )
        VALUES (
            :id, :name, :category, :material, :color, :size, :roll_length,
            :unit_price, :cost_price, :initial_quantity, :current_quantity,
            :minimum_stock, :maximum_stock, :barcode, :sku, :location,
            :supplier, :description, :created_by, :created_at, :updated_at
        )
    `
	_, err := s.DB.NamedExecContext(ctx, query, item)
	return classify("item", err)
}

// UpdateItemDetails never touches quantities or location.
func (s *Store) UpdateItemDetails(ctx context.Context, item *model.InventoryItem) error {
	query := `
        UPDATE inventory_items SET
            name = :name,
            category = :category,
            material = :material,
            color = :color,
            size = :size,
            roll_length = :roll_length,
            unit_price = :unit_price,
            cost_price = :cost_price,
            minimum_stock = :minimum_stock,
            maximum_stock = :maximum_stock,
            barcode = :barcode,
            sku = :sku,
            supplier = :supplier,
            description = :description,
            updated_at = :updated_at
        WHERE id = :id
    `
	if !validID(item.ID) {
		return apperror.NotFound("item", item.ID)
	}
	res, err := s.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		return classify("item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("item", item.ID)
	}
	return nil
}

func (s *Store) FindItemByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	return getItem(ctx, s.DB, id)
}

func getItem(ctx context.Context, q sqlx.QueryerContext, id string) (*model.InventoryItem, error) {
	if !validID(id) {
		return nil, apperror.NotFound("item", id)
	}
	var item model.InventoryItem
	err := sqlx.GetContext(ctx, q, &item, `SELECT * FROM inventory_items WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("item", id)
	}
	if err != nil {
		return nil, classify("item", err)
	}
	return &item, nil
}

func (s *Store) FindItems(ctx context.Context, f *dto.ItemFilters) ([]model.InventoryItem, int, error) {
	items := []model.InventoryItem{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if !allLocations(f.Location) {
		conditions = append(conditions, "location = :location")
		args["location"] = f.Location
	}
	if f.Category != "" {
		conditions = append(conditions, "lower(category) = lower(:category)")
		args["category"] = f.Category
	}
	if f.LowStock {
		conditions = append(conditions, "current_quantity <= minimum_stock")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := s.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM inventory_items"+whereClause)
	if err != nil {
		return nil, 0, classify("item", err)
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, classify("item", err)
	}

	query := "SELECT * FROM inventory_items" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		pg := f.Page
		if pg < 1 {
			pg = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (pg-1)*f.PageSize)
	}

	nstmt, err := s.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, classify("item", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, classify("item", err)
	}
	return items, count, nil
}
