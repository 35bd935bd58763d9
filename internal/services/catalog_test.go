package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
)

func TestRegisterEquipment(t *testing.T) {
	svc := NewCatalogService(newTestBackend(t))
	ctx := context.Background()

	item, err := svc.RegisterEquipment(ctx, ItemInput{
		Name:     "  Projetor Epson ",
		Type:     "projector",
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, "Projetor Epson", item.Name)
	assert.True(t, item.Available)
	assert.False(t, item.UnderMaintenance)
}

func TestRegisterEquipmentValidation(t *testing.T) {
	svc := NewCatalogService(newTestBackend(t))
	ctx := context.Background()

	_, err := svc.RegisterEquipment(ctx, ItemInput{Type: "projector", Quantity: 1})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = svc.RegisterEquipment(ctx, ItemInput{Name: "Projetor", Type: "projector", Quantity: -1})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestFindByName(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	first := mustCreateEquipment(t, backend, "Projetor Epson")
	second := mustCreateEquipment(t, backend, "projetor epson")

	svc := NewCatalogService(backend)
	found, err := svc.FindByName(ctx, " PROJETOR EPSON ")
	require.NoError(t, err)
	// First match in insertion order wins.
	assert.Equal(t, first.ID, found.ID)
	assert.NotEqual(t, second.ID, found.ID)

	_, err = svc.FindByName(ctx, "inexistente")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListAvailable(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()
	svc := NewCatalogService(backend)

	available := mustCreateEquipment(t, backend, "Projetor Epson")
	taken := mustCreateEquipment(t, backend, "Notebook Dell")
	require.NoError(t, svc.SetAvailability(ctx, taken.ID, false))

	items, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, available.ID, items[0].ID)
}

func TestRegisterResource(t *testing.T) {
	svc := NewCatalogService(newTestBackend(t))
	ctx := context.Background()

	resource, err := svc.RegisterResource(ctx, ItemInput{
		Name:     "Cabo HDMI",
		Type:     "cable",
		Quantity: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resource.ID)

	resources, err := svc.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "Cabo HDMI", resources[0].Name)
}
