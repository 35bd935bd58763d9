package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
	"github.com/beatrizzfernandes/gestao-equipamentos/types"
)

type recordInput struct {
	EquipmentID int        `json:"equipment_id"`
	DueDate     types.Date `json:"due_date"`
}

// ReservationHandler serves the reservation side of the ledger: creating,
// listing, cancelling, and the admin-triggered due-date sweep.
type ReservationHandler struct {
	ledger *services.LedgerService
	users  *services.UserService
}

func NewReservationHandler(ledger *services.LedgerService, users *services.UserService) *ReservationHandler {
	return &ReservationHandler{ledger: ledger, users: users}
}

func (h *ReservationHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/cancel", h.cancel)
	r.With(RequireAdmin(h.users)).Post("/sweep", h.sweep)
	return r
}

func (h *ReservationHandler) create(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in recordInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := h.ledger.CreateReservation(r.Context(), in.EquipmentID, email, in.DueDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *ReservationHandler) list(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if r.URL.Query().Get("all") == "true" {
		user, err := h.users.GetByEmail(r.Context(), email)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !strings.EqualFold(user.Role, types.RoleAdministrator) {
			writeError(w, http.StatusForbidden, "administrator role required")
			return
		}
		records, err := h.ledger.ListAll(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}
	records, err := h.ledger.ListForUser(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *ReservationHandler) cancel(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}
	if err := h.ledger.CancelReservation(r.Context(), id, email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *ReservationHandler) sweep(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.ledger.CheckPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if alerts == nil {
		alerts = []services.PendingAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// LoanHandler serves the loan side of the ledger: immediate check-out,
// return with late-fee calculation, and renewal.
type LoanHandler struct {
	ledger *services.LedgerService
}

func NewLoanHandler(ledger *services.LedgerService) *LoanHandler {
	return &LoanHandler{ledger: ledger}
}

func (h *LoanHandler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Post("/{id}/return", h.returnItem)
	r.Post("/{id}/renew", h.renew)
	return r
}

func (h *LoanHandler) create(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var in recordInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record, err := h.ledger.CreateLoan(r.Context(), in.EquipmentID, email, in.DueDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *LoanHandler) returnItem(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	result, err := h.ledger.ReturnItem(r.Context(), id, email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LoanHandler) renew(w http.ResponseWriter, r *http.Request) {
	email, ok := userEmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	var in struct {
		DueDate types.Date `json:"due_date"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ledger.RenewLoan(r.Context(), id, email, in.DueDate); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "renewed"})
}
