package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

func (s *PostgresStore) CreateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error) {
	const query = `
		INSERT INTO maintenance_tickets (equipment_id, created_at, problem, reported_by, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := s.db.QueryRowContext(
		ctx,
		query,
		ticket.EquipmentID,
		ticket.CreatedAt,
		ticket.Problem,
		ticket.ReportedBy,
		ticket.Status,
	).Scan(&ticket.ID)
	if err != nil {
		return types.MaintenanceTicket{}, wrapPersistence("create ticket", err)
	}
	return ticket, nil
}

func (s *PostgresStore) GetTicketByID(ctx context.Context, id int) (types.MaintenanceTicket, error) {
	const query = `
		SELECT id, equipment_id, created_at, problem, reported_by, status
		FROM maintenance_tickets
		WHERE id = $1`
	var ticket types.MaintenanceTicket
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.EquipmentID,
		&ticket.CreatedAt,
		&ticket.Problem,
		&ticket.ReportedBy,
		&ticket.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MaintenanceTicket{}, ErrNotFound
		}
		return types.MaintenanceTicket{}, wrapPersistence("get ticket", err)
	}
	return ticket, nil
}

func (s *PostgresStore) ListTickets(ctx context.Context) ([]types.MaintenanceTicket, error) {
	const query = `
		SELECT id, equipment_id, created_at, problem, reported_by, status
		FROM maintenance_tickets
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list tickets", err)
	}
	defer rows.Close()

	var tickets []types.MaintenanceTicket
	for rows.Next() {
		var ticket types.MaintenanceTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.EquipmentID,
			&ticket.CreatedAt,
			&ticket.Problem,
			&ticket.ReportedBy,
			&ticket.Status,
		); err != nil {
			return nil, wrapPersistence("scan ticket", err)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list tickets", err)
	}
	return tickets, nil
}

func (s *PostgresStore) UpdateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error) {
	const query = `
		UPDATE maintenance_tickets
		SET status = $1
		WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, ticket.Status, ticket.ID)
	if err != nil {
		return types.MaintenanceTicket{}, wrapPersistence("update ticket", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.MaintenanceTicket{}, wrapPersistence("update ticket", err)
	}
	if affected == 0 {
		return types.MaintenanceTicket{}, ErrNotFound
	}
	return ticket, nil
}
