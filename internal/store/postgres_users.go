package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

func (s *PostgresStore) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	const query = `
		INSERT INTO users (email, name, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(
		ctx,
		query,
		strings.ToLower(user.Email),
		user.Name,
		user.Role,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return types.User{}, wrapPersistence("create user", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT email, name, role, password_hash, created_at
		FROM users
		WHERE email = LOWER($1)`
	var user types.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.Email,
		&user.Name,
		&user.Role,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, wrapPersistence("get user", err)
	}
	return user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]types.User, error) {
	const query = `
		SELECT email, name, role, password_hash, created_at
		FROM users
		ORDER BY created_at, email`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapPersistence("list users", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.Email,
			&user.Name,
			&user.Role,
			&user.PasswordHash,
			&user.CreatedAt,
		); err != nil {
			return nil, wrapPersistence("scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list users", err)
	}
	return users, nil
}
