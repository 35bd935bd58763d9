package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// PostgresStore is the relational persistence gateway. Identifiers come from
// BIGSERIAL sequences, so they are monotonic and never reused.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// wrapPersistence tags driver-level failures so callers can distinguish
// storage trouble from domain errors.
func wrapPersistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// nullDate converts an optional date for insertion; nil becomes SQL NULL.
func nullDate(d *types.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
