package store

import (
	"context"
	"fmt"

	"github.com/beatrizzfernandes/gestao-equipamentos/config"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/db"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// Backend is the persistence gateway: it stores the five entity collections
// and hands back previously saved records in insertion order. One
// implementation per storage flavor (flat JSON files, postgres).
type Backend interface {
	// Users. CreateUser fails with ErrConflict when the email is taken
	// (case-insensitive).
	CreateUser(ctx context.Context, user types.User) (types.User, error)
	GetUserByEmail(ctx context.Context, email string) (types.User, error)
	ListUsers(ctx context.Context) ([]types.User, error)

	// Equipment. Create assigns the next sequential identifier.
	CreateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)
	GetEquipmentByID(ctx context.Context, id int) (types.Equipment, error)
	ListEquipment(ctx context.Context) ([]types.Equipment, error)
	UpdateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)

	// Support resources.
	CreateResource(ctx context.Context, item types.SupportResource) (types.SupportResource, error)
	ListResources(ctx context.Context) ([]types.SupportResource, error)

	// Reservations.
	CreateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (types.Reservation, error)
	ListReservations(ctx context.Context) ([]types.Reservation, error)
	ListActiveReservationsByEquipment(ctx context.Context, equipmentID int) ([]types.Reservation, error)
	UpdateReservation(ctx context.Context, record types.Reservation) (types.Reservation, error)

	// Maintenance tickets.
	CreateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error)
	GetTicketByID(ctx context.Context, id int) (types.MaintenanceTicket, error)
	ListTickets(ctx context.Context) ([]types.MaintenanceTicket, error)
	UpdateTicket(ctx context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error)

	Close() error
}

// Open constructs the backend selected by config.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.StorageJSONFile:
		return OpenJSONFile(cfg.Storage.DataDir)
	case config.StoragePostgres:
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return NewPostgresStore(conn), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
