package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-stock-ledger/internal/customer/dto"
	"github.com/fekuna/omnipos-stock-ledger/internal/model"
	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
	query := `
        INSERT INTO customers (
            id, name, email, phone, address, city, location, tax_number,
            credit_limit, payment_terms, created_by, created_at, updated_at
        )
        VALUES (
            :id, :name, :email, :phone, :address, :city, :location, :tax_number,
            :credit_limit, :payment_terms, :created_by, :created_at, :updated_at
        )
    `
	_, err := s.DB.NamedExecContext(ctx, query, c)
	return classify("customer", err)
}

func (s *Store) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	query := `
        UPDATE customers SET
            name = :name,
            email = :email,
            phone = :phone,
            address = :address,
            city = :city,
            location = :location,
            tax_number = :tax_number,
            credit_limit = :credit_limit,
            payment_terms = :payment_terms,
            updated_at = :updated_at
        WHERE id = :id
    `
	if !validID(c.ID) {
		return apperror.NotFound("customer", c.ID)
	}
	res, err := s.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return classify("customer", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("customer", c.ID)
	}
	return nil
}

func (s *Store) FindCustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	return getCustomer(ctx, s.DB, id)
}

func getCustomer(ctx context.Context, q sqlx.QueryerContext, id string) (*model.Customer, error) {
	if !validID(id) {
		return nil, apperror.NotFound("customer", id)
	}
	var c model.Customer
	err := sqlx.GetContext(ctx, q, &c, `SELECT * FROM customers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("customer", id)
	}
	if err != nil {
		return nil, classify("customer", err)
	}
	return &c, nil
}

func (s *Store) FindCustomers(ctx context.Context, f *dto.CustomerFilters) ([]model.Customer, int, error) {
	customers := []model.Customer{}
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if !allLocations(f.Location) {
		conditions = append(conditions, "location = :location")
		args["location"] = f.Location
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		conditions = append(conditions, "(name ILIKE :search OR email ILIKE :search OR city ILIKE :search)")
		args["search"] = "%" + search + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countStmt, err := s.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM customers"+whereClause)
	if err != nil {
		return nil, 0, classify("customer", err)
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, classify("customer", err)
	}

	query := "SELECT * FROM customers" + whereClause + " ORDER BY lower(name), id"
	if f.PageSize > 0 {
		pg := f.Page
		if pg < 1 {
			pg = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (pg-1)*f.PageSize)
	}

	nstmt, err := s.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, classify("customer", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &customers, args); err != nil {
		return nil, 0, classify("customer", err)
	}
	return customers, count, nil
}
