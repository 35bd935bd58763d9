package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

// CatalogRepository defines persistence operations for the two catalogs.
type CatalogRepository interface {
	CreateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)
	GetEquipmentByID(ctx context.Context, id int) (types.Equipment, error)
	ListEquipment(ctx context.Context) ([]types.Equipment, error)
	UpdateEquipment(ctx context.Context, item types.Equipment) (types.Equipment, error)
	CreateResource(ctx context.Context, item types.SupportResource) (types.SupportResource, error)
	ListResources(ctx context.Context) ([]types.SupportResource, error)
}

// ItemInput is the validated payload for registering equipment or a support
// resource.
type ItemInput struct {
	Name        string `validate:"required"`
	Type        string `validate:"required"`
	Quantity    int    `validate:"gte=0"`
	Description string
}

// CatalogService encapsulates the equipment and support-resource catalogs.
type CatalogService struct {
	repo     CatalogRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterEquipment adds an item to the main catalog. New items start
// available and not under maintenance.
func (s *CatalogService) RegisterEquipment(ctx context.Context, input ItemInput) (types.Equipment, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.TrimSpace(input.Type)
	if err := s.validate.Struct(input); err != nil {
		return types.Equipment{}, fmt.Errorf("%w: %v", store.ErrValidation, err)
	}

	return s.repo.CreateEquipment(ctx, types.Equipment{
		Name:        input.Name,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		Available:   true,
		CreatedAt:   types.DateTimeOf(s.now()),
	})
}

// RegisterResource adds an item to the independent support-resource catalog.
func (s *CatalogService) RegisterResource(ctx context.Context, input ItemInput) (types.SupportResource, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.TrimSpace(input.Type)
	if err := s.validate.Struct(input); err != nil {
		return types.SupportResource{}, fmt.Errorf("%w: %v", store.ErrValidation, err)
	}

	return s.repo.CreateResource(ctx, types.SupportResource{
		Name:        input.Name,
		Type:        input.Type,
		Quantity:    input.Quantity,
		Description: strings.TrimSpace(input.Description),
		Available:   true,
		CreatedAt:   types.DateTimeOf(s.now()),
	})
}

func (s *CatalogService) FindByID(ctx context.Context, id int) (types.Equipment, error) {
	return s.repo.GetEquipmentByID(ctx, id)
}

// FindByName returns the first item whose name matches, in insertion order.
func (s *CatalogService) FindByName(ctx context.Context, name string) (types.Equipment, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return types.Equipment{}, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Name, strings.TrimSpace(name)) {
			return item, nil
		}
	}
	return types.Equipment{}, store.ErrNotFound
}

func (s *CatalogService) List(ctx context.Context) ([]types.Equipment, error) {
	return s.repo.ListEquipment(ctx)
}

// ListAvailable filters the catalog down to items that can be reserved.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]types.Equipment, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]types.Equipment, 0, len(items))
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}
	return available, nil
}

func (s *CatalogService) ListResources(ctx context.Context) ([]types.SupportResource, error) {
	return s.repo.ListResources(ctx)
}

// SetAvailability flips the availability flag on an item.
func (s *CatalogService) SetAvailability(ctx context.Context, id int, available bool) error {
	item, err := s.repo.GetEquipmentByID(ctx, id)
	if err != nil {
		return err
	}
	item.Available = available
	_, err = s.repo.UpdateEquipment(ctx, item)
	return err
}

// SetUnderMaintenance flips the maintenance flag on an item.
func (s *CatalogService) SetUnderMaintenance(ctx context.Context, id int, underMaintenance bool) error {
	item, err := s.repo.GetEquipmentByID(ctx, id)
	if err != nil {
		return err
	}
	item.UnderMaintenance = underMaintenance
	_, err = s.repo.UpdateEquipment(ctx, item)
	return err
}
