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

func (s *Store) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.Movement, int, error) {
	movements := []model.Movement{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if !allLocations(f.Location) {
		conditions = append(conditions, "location = :location")
		args["location"] = f.Location
	}
	if f.ItemID != "" {
		if !validID(f.ItemID) {
			return movements, 0, nil
		}
		conditions = append(conditions, "item_id = :item_id")
		args["item_id"] = f.ItemID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := s.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM stock_movements"+whereClause)
	if err != nil {
		return nil, 0, classify("movement", err)
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, classify("movement", err)
	}

	orderBy := "created_at"
	if dto.MovementOrderColumns[f.OrderBy] {
		orderBy = f.OrderBy
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	query := fmt.Sprintf("SELECT * FROM stock_movements%s ORDER BY %s %s, seq %s", whereClause, orderBy, dir, dir)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", f.Offset)
	}

	nstmt, err := s.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, classify("movement", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &movements, args); err != nil {
		return nil, 0, classify("movement", err)
	}
	return movements, count, nil
}

func (s *Store) ListItemMovements(ctx context.Context, itemID string) ([]model.Movement, error) {
	if _, err := getItem(ctx, s.DB, itemID); err != nil {
		return nil, err
	}
	return itemMovements(ctx, s.DB, itemID)
}

// itemMovements returns the item's history in ledger order.
func itemMovements(ctx context.Context, q sqlx.QueryerContext, itemID string) ([]model.Movement, error) {
	movements := []model.Movement{}
	err := sqlx.SelectContext(ctx, q, &movements,
		`SELECT * FROM stock_movements WHERE item_id = $1 ORDER BY seq`, itemID)
	if err != nil {
		return nil, classify("movement", err)
	}
	return movements, nil
}

func (s *Store) FindMovementByID(ctx context.Context, id string) (*model.Movement, error) {
	if !validID(id) {
		return nil, apperror.NotFound("movement", id)
	}
	var m model.Movement
	err := s.DB.GetContext(ctx, &m, `SELECT * FROM stock_movements WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("movement", id)
	}
	if err != nil {
		return nil, classify("movement", err)
	}
	return &m, nil
}
