// Package postgres is the durable storage backend. Ledger transactions run at READ
// COMMITTED and serialize writers per row with SELECT ... FOR UPDATE.
package postgres

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Store struct {
	DB *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{DB: db}
}

// validID guards UUID columns: a malformed id can never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func allLocations(location string) bool {
	return location == "" || location == "all"
}
