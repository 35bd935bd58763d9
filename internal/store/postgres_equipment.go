package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

func (s *PostgresStore) CreateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error) {
	const query = `
		INSERT INTO equipment (name, type, quantity, description, available, under_maintenance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := s.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.Type,
		item.Quantity,
		item.Description,
		item.Available,
		item.UnderMaintenance,
		item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return types.Equipment{}, wrapPersistence("create equipment", err)
	}
	return item, nil
}

func (s *PostgresStore) GetEquipmentByID(ctx context.Context, id int) (types.Equipment, error) {
	const query = `
		SELECT id, name, type, quantity, description, available, under_maintenance, created_at
		FROM equipment
		WHERE id = $1`
	var item types.Equipment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Type,
		&item.Quantity,
		&item.Description,
		&item.Available,
		&item.UnderMaintenance,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Equipment{}, ErrNotFound
		}
		return types.Equipment{}, wrapPersistence("get equipment", err)
	}
	return item, nil
}

func (s *PostgresStore) ListEquipment(ctx context.Context) ([]types.Equipment, error) {
	const query = `
		SELECT id, name, type, quantity, description, available, under_maintenance, created_at
		FROM equipment
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list equipment", err)
	}
	defer rows.Close()

	var items []types.Equipment
	for rows.Next() {
		var item types.Equipment
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Type,
			&item.Quantity,
			&item.Description,
			&item.Available,
			&item.UnderMaintenance,
			&item.CreatedAt,
		); err != nil {
			return nil, wrapPersistence("scan equipment", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list equipment", err)
	}
	return items, nil
}

func (s *PostgresStore) UpdateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error) {
	const query = `
		UPDATE equipment
		SET name = $1,
			type = $2,
			quantity = $3,
			description = $4,
			available = $5,
			under_maintenance = $6
		WHERE id = $7`
	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Name,
		item.Type,
		item.Quantity,
		item.Description,
		item.Available,
		item.UnderMaintenance,
		item.ID,
	)
	if err != nil {
		return types.Equipment{}, wrapPersistence("update equipment", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Equipment{}, wrapPersistence("update equipment", err)
	}
	if affected == 0 {
		return types.Equipment{}, ErrNotFound
	}
	return item, nil
}

func (s *PostgresStore) CreateResource(ctx context.Context, item types.SupportResource) (types.SupportResource, error) {
	const query = `
		INSERT INTO support_resources (name, type, quantity, description, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := s.db.QueryRowContext(
		ctx,
		query,
		item.Name,
		item.Type,
		item.Quantity,
		item.Description,
		item.Available,
		item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return types.SupportResource{}, wrapPersistence("create resource", err)
	}
	return item, nil
}

func (s *PostgresStore) ListResources(ctx context.Context) ([]types.SupportResource, error) {
	const query = `
		SELECT id, name, type, quantity, description, available, created_at
		FROM support_resources
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list resources", err)
	}
	defer rows.Close()

	var items []types.SupportResource
	for rows.Next() {
		var item types.SupportResource
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Type,
			&item.Quantity,
			&item.Description,
			&item.Available,
			&item.CreatedAt,
		); err != nil {
			return nil, wrapPersistence("scan resource", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list resources", err)
	}
	return items, nil
}
