package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
)

// EquipmentHandler serves the equipment catalog. Listing is open to any
// authenticated user; registering new items is restricted to administrators.
type EquipmentHandler struct {
	catalog *services.CatalogService
	users   *services.UserService
}

func NewEquipmentHandler(catalog *services.CatalogService, users *services.UserService) *EquipmentHandler {
	return &EquipmentHandler{catalog: catalog, users: users}
}

func (h *EquipmentHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.With(RequireAdmin(h.users)).Post("/", h.create)
	return r
}

func (h *EquipmentHandler) list(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.List
	if r.URL.Query().Get("available") == "true" {
		list = h.catalog.ListAvailable
	}
	items, err := list(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id")
		return
	}
	item, err := h.catalog.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *EquipmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.ItemInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.catalog.RegisterEquipment(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ResourceHandler serves the support-resource catalog (cables, adapters,
// chargers). Resources are informational and never reserved.
type ResourceHandler struct {
	catalog *services.CatalogService
	users   *services.UserService
}

func NewResourceHandler(catalog *services.CatalogService, users *services.UserService) *ResourceHandler {
	return &ResourceHandler{catalog: catalog, users: users}
}

func (h *ResourceHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.With(RequireAdmin(h.users)).Post("/", h.create)
	return r
}

func (h *ResourceHandler) list(w http.ResponseWriter, r *http.Request) {
	resources, err := h.catalog.ListResources(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (h *ResourceHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.ItemInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resource, err := h.catalog.RegisterResource(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}
