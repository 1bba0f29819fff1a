package postgres

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/report/dto"
	"github.com/jmoiron/sqlx"
)

func (s *Store) ItemsSnapshot(ctx context.Context, location string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := s.readSnapshot(ctx, func(tx *sqlx.Tx) error {
		var err error
		items, err = snapshotItems(ctx, tx, location)
		return err
	})
	return items, err
}

func snapshotItems(ctx context.Context, tx *sqlx.Tx, location string) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	query := `SELECT * FROM inventory_items`
	args := []interface{}{}
	if !allLocations(location) {
		query += ` WHERE location = $1`
		args = append(args, location)
	}
	err := tx.SelectContext(ctx, &items, query+` ORDER BY id`, args...)
	return items, err
}

func (s *Store) OrdersSnapshot(ctx context.Context, location string, from, to *time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := s.readSnapshot(ctx, func(tx *sqlx.Tx) error {
		var err error
		orders, err = snapshotOrders(ctx, tx, location, from, to)
		return err
	})
	return orders, err
}

func snapshotOrders(ctx context.Context, tx *sqlx.Tx, location string, from, to *time.Time) ([]model.Order, error) {
	orders := []model.Order{}
	conditions := []string{}
	args := []interface{}{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if !allLocations(location) {
		add("location = ?", location)
	}
	if from != nil {
		add("created_at >= ?", *from)
	}
	if to != nil {
		add("created_at <= ?", *to)
	}

	query := `SELECT * FROM orders`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if err := tx.SelectContext(ctx, &orders, query+` ORDER BY created_at, id`, args...); err != nil {
		return nil, err
	}

	ptrs := make([]*model.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	if err := loadLines(ctx, tx, ptrs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ItemLedgerSnapshot(ctx context.Context, itemID string) (*model.InventoryItem, []model.Movement, error) {
	var (
		item      *model.InventoryItem
		movements []model.Movement
	)
	err := s.readSnapshot(ctx, func(tx *sqlx.Tx) error {
		var err error
		if item, err = getItem(ctx, tx, itemID); err != nil {
			return err
		}
		movements, err = itemMovements(ctx, tx, itemID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return item, movements, nil
}

func (s *Store) DashboardSnapshot(ctx context.Context, location string, recent int) (*dto.DashboardSnapshot, error) {
	snap := &dto.DashboardSnapshot{}
	err := s.readSnapshot(ctx, func(tx *sqlx.Tx) error {
		var err error
		if snap.Items, err = snapshotItems(ctx, tx, location); err != nil {
			return err
		}
		if snap.Orders, err = snapshotOrders(ctx, tx, location, nil, nil); err != nil {
			return err
		}

		countQuery := `SELECT count(*) FROM customers`
		movQuery := `SELECT * FROM stock_movements`
		args := []interface{}{}
		if !allLocations(location) {
			countQuery += ` WHERE location = $1`
			movQuery += ` WHERE location = $1`
			args = append(args, location)
		}
		if err := tx.GetContext(ctx, &snap.CustomerCount, countQuery, args...); err != nil {
			return err
		}

		snap.RecentMovements = []model.Movement{}
		movQuery += ` ORDER BY seq DESC LIMIT ` + strconv.Itoa(recent)
		return tx.SelectContext(ctx, &snap.RecentMovements, movQuery, args...)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
