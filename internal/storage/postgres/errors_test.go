package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-stock-ledger/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want apperror.Kind
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, apperror.KindConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperror.KindConflict},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, apperror.KindConflict},
		{"duplicate barcode", &pgconn.PgError{Code: "23505", ConstraintName: "inventory_items_barcode_key"}, apperror.KindAlreadyExists},
		{"duplicate idempotency key", &pgconn.PgError{Code: "23505", ConstraintName: "orders_idempotency_key_key"}, apperror.KindConflict},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperror.KindUnavailable},
		{"query canceled", &pgconn.PgError{Code: "57014"}, apperror.KindUnavailable},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), apperror.KindUnavailable},
		{"syntax error", &pgconn.PgError{Code: "42601"}, apperror.KindInternal},
		{"plain", errors.New("boom"), apperror.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperror.KindOf(classify("item", tc.err)))
		})
	}
}

func TestClassify_passesThroughClassified(t *testing.T) {
	in := apperror.NotFound("item", "a")
	assert.Same(t, in, classify("order", in))
	assert.Nil(t, classify("item", nil))
}

func TestClassify_uniqueMessage(t *testing.T) {
	err := classify("item", &pgconn.PgError{Code: "23505", ConstraintName: "inventory_items_sku_key"})
	assert.Contains(t, err.Error(), "sku already exists")
}
