package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
)

// ReportsHandler serves the read-only report projections.
type ReportsHandler struct {
	reports *services.ReportsService
}

func NewReportsHandler(reports *services.ReportsService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func (h *ReportsHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/equipment", h.equipment)
	r.Get("/reservations", h.reservations)
	r.Get("/maintenance", h.maintenance)
	return r
}

func (h *ReportsHandler) equipment(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.EquipmentReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportsHandler) reservations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.ReservationReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportsHandler) maintenance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.MaintenanceReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
