package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// Collection file names under the data directory.
const (
	usersFile        = "users.json"
	equipmentFile    = "equipment.json"
	resourcesFile    = "resources.json"
	reservationsFile = "reservations.json"
	maintenanceFile  = "maintenance.json"
)

// collection is the on-disk envelope for one entity collection: the records
// in insertion order plus the persisted id counter. The counter survives
// restarts, so identifiers are never reused.
type collection[T any] struct {
	NextID  int `json:"next_id"`
	Records []T `json:"records"`
}

func (c *collection[T]) nextID() int {
	id := c.NextID
	c.NextID++
	return id
}

func (c *collection[T]) save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	return nil
}

func loadCollection[T any](path string) (collection[T], error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return collection[T]{NextID: 1}, nil
	}
	if err != nil {
		return collection[T]{}, fmt.Errorf("%w: read %s: %v", ErrPersistence, filepath.Base(path), err)
	}

	var c collection[T]
	if err := json.Unmarshal(data, &c); err != nil {
		return collection[T]{}, fmt.Errorf("%w: decode %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	if c.NextID < 1 {
		c.NextID = 1
	}
	return c, nil
}

// storedUser is the on-disk encoding of a user. The API type redacts the
// password hash from JSON, so persisting it directly would lose the
// credential; this shape keeps it.
type storedUser struct {
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	PasswordHash string         `json:"password_hash"`
	CreatedAt    types.DateTime `json:"created_at"`
}

func toStoredUser(user types.User) storedUser {
	return storedUser{
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}

func (u storedUser) user() types.User {
	return types.User{
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// JSONFileStore keeps the five collections in memory and rewrites the
// affected file in full on every mutation, mirroring the flat-file layout of
// the desktop variant. There is no transaction spanning two files; a crash
// between the equipment and reservation writes of one logical action leaves
// them inconsistent, which is an accepted limitation of this backend.
type JSONFileStore struct {
	dir string

	// mu serializes all access. The original ran single-threaded; the
	// HTTP surface does not.
	mu           sync.Mutex
	users        collection[storedUser]
	equipment    collection[types.Equipment]
	resources    collection[types.SupportResource]
	reservations collection[types.Reservation]
	tickets      collection[types.MaintenanceTicket]
}

// OpenJSONFile loads the collections under dir, creating it if needed.
// Absent files yield empty collections.
func OpenJSONFile(dir string) (*JSONFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrPersistence, err)
	}

	s := &JSONFileStore{dir: dir}
	var err error
	if s.users, err = loadCollection[storedUser](s.path(usersFile)); err != nil {
		return nil, err
	}
	if s.equipment, err = loadCollection[types.Equipment](s.path(equipmentFile)); err != nil {
		return nil, err
	}
	if s.resources, err = loadCollection[types.SupportResource](s.path(resourcesFile)); err != nil {
		return nil, err
	}
	if s.reservations, err = loadCollection[types.Reservation](s.path(reservationsFile)); err != nil {
		return nil, err
	}
	if s.tickets, err = loadCollection[types.MaintenanceTicket](s.path(maintenanceFile)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONFileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Users

func (s *JSONFileStore) CreateUser(_ context.Context, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users.Records {
		if strings.EqualFold(existing.Email, user.Email) {
			return types.User{}, fmt.Errorf("%w: email already registered", ErrConflict)
		}
	}

	s.users.Records = append(s.users.Records, toStoredUser(user))
	if err := s.users.save(s.path(usersFile)); err != nil {
		s.users.Records = s.users.Records[:len(s.users.Records)-1]
		return types.User{}, err
	}
	return user, nil
}

func (s *JSONFileStore) GetUserByEmail(_ context.Context, email string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.users.Records {
		if strings.EqualFold(stored.Email, email) {
			return stored.user(), nil
		}
	}
	return types.User{}, ErrNotFound
}

func (s *JSONFileStore) ListUsers(_ context.Context) ([]types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]types.User, 0, len(s.users.Records))
	for _, stored := range s.users.Records {
		users = append(users, stored.user())
	}
	return users, nil
}

// Equipment

func (s *JSONFileStore) CreateEquipment(_ context.Context, item types.Equipment) (types.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.equipment.nextID()
	s.equipment.Records = append(s.equipment.Records, item)
	if err := s.equipment.save(s.path(equipmentFile)); err != nil {
		s.equipment.Records = s.equipment.Records[:len(s.equipment.Records)-1]
		s.equipment.NextID--
		return types.Equipment{}, err
	}
	return item, nil
}

func (s *JSONFileStore) GetEquipmentByID(_ context.Context, id int) (types.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.equipment.Records {
		if item.ID == id {
			return item, nil
		}
	}
	return types.Equipment{}, ErrNotFound
}

func (s *JSONFileStore) ListEquipment(_ context.Context) ([]types.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Equipment(nil), s.equipment.Records...), nil
}

func (s *JSONFileStore) UpdateEquipment(_ context.Context, item types.Equipment) (types.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.equipment.Records {
		if existing.ID == item.ID {
			s.equipment.Records[i] = item
			if err := s.equipment.save(s.path(equipmentFile)); err != nil {
				s.equipment.Records[i] = existing
				return types.Equipment{}, err
			}
			return item, nil
		}
	}
	return types.Equipment{}, ErrNotFound
}

// Support resources

func (s *JSONFileStore) CreateResource(_ context.Context, item types.SupportResource) (types.SupportResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.resources.nextID()
	s.resources.Records = append(s.resources.Records, item)
	if err := s.resources.save(s.path(resourcesFile)); err != nil {
		s.resources.Records = s.resources.Records[:len(s.resources.Records)-1]
		s.resources.NextID--
		return types.SupportResource{}, err
	}
	return item, nil
}

func (s *JSONFileStore) ListResources(_ context.Context) ([]types.SupportResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.SupportResource(nil), s.resources.Records...), nil
}

// Reservations

func (s *JSONFileStore) CreateReservation(_ context.Context, record types.Reservation) (types.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.reservations.nextID()
	s.reservations.Records = append(s.reservations.Records, record)
	if err := s.reservations.save(s.path(reservationsFile)); err != nil {
		s.reservations.Records = s.reservations.Records[:len(s.reservations.Records)-1]
		s.reservations.NextID--
		return types.Reservation{}, err
	}
	return record, nil
}

func (s *JSONFileStore) GetReservationByID(_ context.Context, id int) (types.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.reservations.Records {
		if record.ID == id {
			return record, nil
		}
	}
	return types.Reservation{}, ErrNotFound
}

func (s *JSONFileStore) ListReservations(_ context.Context) ([]types.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Reservation(nil), s.reservations.Records...), nil
}

func (s *JSONFileStore) ListActiveReservationsByEquipment(_ context.Context, equipmentID int) ([]types.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active []types.Reservation
	for _, record := range s.reservations.Records {
		if record.EquipmentID == equipmentID && record.Status.Active() {
			active = append(active, record)
		}
	}
	return active, nil
}

func (s *JSONFileStore) UpdateReservation(_ context.Context, record types.Reservation) (types.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.reservations.Records {
		if existing.ID == record.ID {
			s.reservations.Records[i] = record
			if err := s.reservations.save(s.path(reservationsFile)); err != nil {
				s.reservations.Records[i] = existing
				return types.Reservation{}, err
			}
			return record, nil
		}
	}
	return types.Reservation{}, ErrNotFound
}

// Maintenance tickets

func (s *JSONFileStore) CreateTicket(_ context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket.ID = s.tickets.nextID()
	s.tickets.Records = append(s.tickets.Records, ticket)
	if err := s.tickets.save(s.path(maintenanceFile)); err != nil {
		s.tickets.Records = s.tickets.Records[:len(s.tickets.Records)-1]
		s.tickets.NextID--
		return types.MaintenanceTicket{}, err
	}
	return ticket, nil
}

func (s *JSONFileStore) GetTicketByID(_ context.Context, id int) (types.MaintenanceTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ticket := range s.tickets.Records {
		if ticket.ID == id {
			return ticket, nil
		}
	}
	return types.MaintenanceTicket{}, ErrNotFound
}

func (s *JSONFileStore) ListTickets(_ context.Context) ([]types.MaintenanceTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.MaintenanceTicket(nil), s.tickets.Records...), nil
}

func (s *JSONFileStore) UpdateTicket(_ context.Context, ticket types.MaintenanceTicket) (types.MaintenanceTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.tickets.Records {
		if existing.ID == ticket.ID {
			s.tickets.Records[i] = ticket
			if err := s.tickets.save(s.path(maintenanceFile)); err != nil {
				s.tickets.Records[i] = existing
				return types.MaintenanceTicket{}, err
			}
			return ticket, nil
		}
	}
	return types.MaintenanceTicket{}, ErrNotFound
}

func (s *JSONFileStore) Close() error {
	return nil
}
