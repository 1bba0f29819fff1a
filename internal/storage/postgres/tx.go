package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

type pgTx struct {
	tx *sqlx.Tx
}

// WithinTx implements ledger.TxManager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return classify("transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return classify("transaction", err)
	}
	if err := ctx.Err(); err != nil {
		return apperror.Unavailable(err)
	}
	if err := tx.Commit(); err != nil {
		return classify("transaction", err)
	}
	return nil
}

// readSnapshot runs fn in a read-only REPEATABLE READ transaction so every query in fn
// sees the same committed state.
func (s *Store) readSnapshot(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return classify("snapshot", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return classify("snapshot", err)
	}
	return classify("snapshot", tx.Commit())
}

func (t *pgTx) LockItem(ctx context.Context, itemID string) (*model.InventoryItem, error) {
	if !validID(itemID) {
		return nil, apperror.NotFound("item", itemID)
	}
	var item model.InventoryItem
	err := t.tx.GetContext(ctx, &item, `SELECT * FROM inventory_items WHERE id = $1 FOR UPDATE`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("item", itemID)
	}
	if err != nil {
		return nil, classify("item", err)
	}
	return &item, nil
}

func (t *pgTx) GetItem(ctx context.Context, itemID string) (*model.InventoryItem, error) {
	return getItem(ctx, t.tx, itemID)
}

func (t *pgTx) SetQuantity(ctx context.Context, itemID string, qty int64, at time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE inventory_items SET current_quantity = $2, updated_at = $3 WHERE id = $1`,
		itemID, qty, at)
	if err != nil {
		return classify("item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("item", itemID)
	}
	return nil
}

func (t *pgTx) AppendMovement(ctx context.Context, m *model.Movement) error {
	query := `
        INSERT INTO stock_movements (
            id, item_id, movement_type, quantity, quantity_change,
            previous_quantity, new_quantity, reference_type, reference_id,
            notes, location, created_by, created_at
        )
        VALUES (
            :id, :item_id, :movement_type, :quantity, :quantity_change,
            :previous_quantity, :new_quantity, :reference_type, :reference_id,
            :notes, :location, :created_by, :created_at
        )
        RETURNING seq
    `
	rows, err := sqlx.NamedQueryContext(ctx, t.tx, query, m)
	if err != nil {
		return classify("movement", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&m.Sequence); err != nil {
			return classify("movement", err)
		}
	}
	return classify("movement", rows.Err())
}

// NextOrderNumber bumps the year's counter row. The row lock is held until the transaction
// ends, so concurrent orders in the same year queue behind each other.
func (t *pgTx) NextOrderNumber(ctx context.Context, year int) (int64, error) {
	var n int64
	err := t.tx.GetContext(ctx, &n, `
        INSERT INTO order_counters (year, value) VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET value = order_counters.value + 1
        RETURNING value
    `, year)
	if err != nil {
		return 0, classify("order counter", err)
	}
	return n, nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (
            id, order_number, customer_id, subtotal, discount_percentage, discount_amount,
            tax_percentage, tax_amount, total, status, payment_amount, payment_method,
            payment_date, due_date, notes, location, idempotency_key, stock_applied,
            created_by, created_at, updated_at
        )
        VALUES (
            :id, :order_number, :customer_id, :subtotal, :discount_percentage, :discount_amount,
            :tax_percentage, :tax_amount, :total, :status, :payment_amount, :payment_method,
            :payment_date, :due_date, :notes, :location, :idempotency_key, :stock_applied,
            :created_by, :created_at, :updated_at
        )
    `
	if _, err := t.tx.NamedExecContext(ctx, query, o); err != nil {
		return classify("order", err)
	}

	lineQuery := `
        INSERT INTO order_lines (
            order_id, line_no, item_id, quantity, unit_price,
            discount_percentage, discount_amount, total
        )
        VALUES (
            :order_id, :line_no, :item_id, :quantity, :unit_price,
            :discount_percentage, :discount_amount, :total
        )
    `
	for i := range o.Lines {
		o.Lines[i].OrderID = o.ID
		if _, err := t.tx.NamedExecContext(ctx, lineQuery, &o.Lines[i]); err != nil {
			return classify("order line", err)
		}
	}
	return nil
}

func (t *pgTx) FindOrderByIdempotencyKey(ctx context.Context, key string) (*model.Order, error) {
	var o model.Order
	err := t.tx.GetContext(ctx, &o, `SELECT * FROM orders WHERE idempotency_key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("order", err)
	}
	if err := loadLines(ctx, t.tx, []*model.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (t *pgTx) LockOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if !validID(orderID) {
		return nil, apperror.NotFound("order", orderID)
	}
	var o model.Order
	err := t.tx.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1 FOR UPDATE`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("order", orderID)
	}
	if err != nil {
		return nil, classify("order", err)
	}
	if err := loadLines(ctx, t.tx, []*model.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrder writes status and payment fields. Lines are immutable.
func (t *pgTx) UpdateOrder(ctx context.Context, o *model.Order) error {
	query := `
        UPDATE orders SET
            status = :status,
            payment_amount = :payment_amount,
            payment_method = :payment_method,
            payment_date = :payment_date,
            stock_applied = :stock_applied,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := t.tx.NamedExecContext(ctx, query, o)
	if err != nil {
		return classify("order", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("order", o.ID)
	}
	return nil
}

func (t *pgTx) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	return getCustomer(ctx, t.tx, customerID)
}
