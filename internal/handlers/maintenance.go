package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
)

// MaintenanceHandler serves the maintenance log (administrators only) and
// the support channel open to any authenticated user.
type MaintenanceHandler struct {
	maintenance *services.MaintenanceService
	users       *services.UserService
}

func NewMaintenanceHandler(maintenance *services.MaintenanceService, users *services.UserService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, users: users}
}

func (h *MaintenanceHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequireAdmin(h.users))
	r.Post("/", h.report)
	r.Get("/", h.list)
	r.Post("/{id}/resolve", h.resolve)
	return r
}

func (h *MaintenanceHandler) report(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in struct {
		EquipmentID int    `json:"equipment_id"`
		Problem     string `json:"problem"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	ticket, err := h.maintenance.Report(r.Context(), in.EquipmentID, in.Problem, user.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

func (h *MaintenanceHandler) list(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.maintenance.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (h *MaintenanceHandler) resolve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}
	ticket, err := h.maintenance.Resolve(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// Support forwards a free-form help request to the support address. Unlike
// the ticket endpoints it is open to any authenticated user, so the server
// mounts it outside this handler's router.
func (h *MaintenanceHandler) Support(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in struct {
		Message string `json:"message"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.maintenance.SupportRequest(r.Context(), email, in.Message); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
