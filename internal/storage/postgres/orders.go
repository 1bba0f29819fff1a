package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/internal/order/dto"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

func (s *Store) FindOrderByID(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, apperror.NotFound("order", id)
	}
	var o model.Order
	err := s.DB.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("order", id)
	}
	if err != nil {
		return nil, classify("order", err)
	}
	if err := loadLines(ctx, s.DB, []*model.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) FindOrders(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	orders := []model.Order{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if !allLocations(f.Location) {
		conditions = append(conditions, "location = :location")
		args["location"] = f.Location
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.CustomerID != "" {
		if !validID(f.CustomerID) {
			return orders, 0, nil
		}
		conditions = append(conditions, "customer_id = :customer_id")
		args["customer_id"] = f.CustomerID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := s.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM orders"+whereClause)
	if err != nil {
		return nil, 0, classify("order", err)
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, classify("order", err)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		pg := f.Page
		if pg < 1 {
			pg = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (pg-1)*f.PageSize)
	}

	nstmt, err := s.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, classify("order", err)
	}
	defer nstmt.Close()
	if err := nstmt.SelectContext(ctx, &orders, args); err != nil {
		return nil, 0, classify("order", err)
	}

	ptrs := make([]*model.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	if err := loadLines(ctx, s.DB, ptrs); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

// loadLines fills Lines for every order with one query.
func loadLines(ctx context.Context, q sqlx.QueryerContext, orders []*model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*model.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		o.Lines = []model.OrderLine{}
		byID[o.ID] = o
	}

	query, args, err := sqlx.In(`SELECT * FROM order_lines WHERE order_id IN (?) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var lines []model.OrderLine
	if err := sqlx.SelectContext(ctx, q, &lines, query, args...); err != nil {
		return classify("order line", err)
	}
	for _, l := range lines {
		o := byID[l.OrderID]
		o.Lines = append(o.Lines, l)
	}
	return nil
}
