package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

const reservationColumns = `id, equipment_id, user_email, created_at, due_date, status, actual_return_date`

func (s *PostgresStore) CreateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error) {
	const query = `
		INSERT INTO reservations (equipment_id, user_email, created_at, due_date, status, actual_return_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := s.db.QueryRowContext(
		ctx,
		query,
		record.EquipmentID,
		record.UserEmail,
		record.CreatedAt,
		record.DueDate,
		record.Status,
		nullDate(record.ActualReturnDate),
	).Scan(&record.ID)
	if err != nil {
		return types.Reservation{}, wrapPersistence("create reservation", err)
	}
	return record, nil
}

func (s *PostgresStore) GetReservationByID(ctx context.Context, id int) (types.Reservation, error) {
	const query = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1`
	record, err := scanReservation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Reservation{}, ErrNotFound
		}
		return types.Reservation{}, wrapPersistence("get reservation", err)
	}
	return record, nil
}

func (s *PostgresStore) ListReservations(ctx context.Context) ([]types.Reservation, error) {
	const query = `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY id`
	return s.queryReservations(ctx, query)
}

func (s *PostgresStore) ListActiveReservationsByEquipment(ctx context.Context, equipmentID int) ([]types.Reservation, error) {
	const query = `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE equipment_id = $1 AND status IN ('reserved', 'loaned')
		ORDER BY id`
	return s.queryReservations(ctx, query, equipmentID)
}

func (s *PostgresStore) UpdateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error) {
	const query = `
		UPDATE reservations
		SET due_date = $1,
			status = $2,
			actual_return_date = $3
		WHERE id = $4`
	result, err := s.db.ExecContext(
		ctx,
		query,
		record.DueDate,
		record.Status,
		nullDate(record.ActualReturnDate),
		record.ID,
	)
	if err != nil {
		return types.Reservation{}, wrapPersistence("update reservation", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Reservation{}, wrapPersistence("update reservation", err)
	}
	if affected == 0 {
		return types.Reservation{}, ErrNotFound
	}
	return record, nil
}

func (s *PostgresStore) queryReservations(ctx context.Context, query string, args ...any) ([]types.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPersistence("list reservations", err)
	}
	defer rows.Close()

	var records []types.Reservation
	for rows.Next() {
		record, err := scanReservation(rows)
		if err != nil {
			return nil, wrapPersistence("scan reservation", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list reservations", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (types.Reservation, error) {
	var record types.Reservation
	var returned sql.NullTime
	if err := row.Scan(
		&record.ID,
		&record.EquipmentID,
		&record.UserEmail,
		&record.CreatedAt,
		&record.DueDate,
		&record.Status,
		&returned,
	); err != nil {
		return types.Reservation{}, err
	}
	if returned.Valid {
		date := types.DateOf(returned.Time)
		record.ActualReturnDate = &date
	}
	return record, nil
}
