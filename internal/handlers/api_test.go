package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beatrizzfernandes/gestao-equipamentos/internal/notify"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/services"
	"github.com/beatrizzfernandes/gestao-equipamentos/internal/store"
)

const testSecret = "test-secret"

// newTestAPI assembles the full route tree over a throwaway JSON file
// backend, mirroring the wiring in the server package.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	backend, err := store.OpenJSONFile(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	log := zap.NewNop()
	notifier := notify.New(notify.NewLogBackend(log), log)

	users := services.NewUserService(backend)
	catalog := services.NewCatalogService(backend)
	ledger := services.NewLedgerService(backend, notifier, log)
	maintenance := services.NewMaintenanceService(backend, notifier, "suporte@universidade.com")
	reports := services.NewReportsService(backend)

	secret := []byte(testSecret)
	maintenanceHandler := NewMaintenanceHandler(maintenance, users)
	r := chi.NewRouter()
	r.Get("/healthz", Healthz)
	r.Mount("/auth", NewAuthHandler(users, secret).Router())
	r.Group(func(authed chi.Router) {
		authed.Use(RequireAuth(secret))
		authed.Mount("/equipment", NewEquipmentHandler(catalog, users).Router())
		authed.Mount("/resources", NewResourceHandler(catalog, users).Router())
		authed.Mount("/reservations", NewReservationHandler(ledger, users).Router())
		authed.Mount("/loans", NewLoanHandler(ledger).Router())
		authed.Mount("/maintenance", maintenanceHandler.Router())
		authed.Post("/support", maintenanceHandler.Support)
		authed.Mount("/reports", NewReportsHandler(reports).Router())
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, srv *httptest.Server, email, role string) string {
	t.Helper()

	resp, _ := doJSON(t, srv, http.MethodPost, "/auth/register", "", map[string]any{
		"Name":     "Test User",
		"Email":    email,
		"Password": "secret1",
		"Role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	srv := newTestAPI(t)
	resp, body := doJSON(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthRequired(t *testing.T) {
	srv := newTestAPI(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/equipment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/equipment", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginFlow(t *testing.T) {
	srv := newTestAPI(t)
	token := registerAndLogin(t, srv, "ana@universidade.com", "teacher")

	resp, body := doJSON(t, srv, http.MethodGet, "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@universidade.com", body["email"])
	assert.Nil(t, body["password_hash"])

	resp, _ = doJSON(t, srv, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "ana@universidade.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEquipmentAdminOnly(t *testing.T) {
	srv := newTestAPI(t)
	teacher := registerAndLogin(t, srv, "ana@universidade.com", "teacher")
	admin := registerAndLogin(t, srv, "root@universidade.com", "administrator")

	payload := map[string]any{"Name": "Projetor Epson", "Type": "projector", "Quantity": 1}

	resp, _ := doJSON(t, srv, http.MethodPost, "/equipment", teacher, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, srv, http.MethodPost, "/equipment", admin, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])

	resp, _ = doJSON(t, srv, http.MethodGet, "/equipment", teacher, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReservationLifecycle(t *testing.T) {
	srv := newTestAPI(t)
	admin := registerAndLogin(t, srv, "root@universidade.com", "administrator")
	ana := registerAndLogin(t, srv, "ana@universidade.com", "teacher")
	bruno := registerAndLogin(t, srv, "bruno@universidade.com", "teacher")

	resp, created := doJSON(t, srv, http.MethodPost, "/equipment", admin, map[string]any{
		"Name": "Projetor Epson", "Type": "projector", "Quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	equipmentID := int(created["id"].(float64))

	reserve := map[string]any{"equipment_id": equipmentID, "due_date": "10/01/2030"}

	resp, record := doJSON(t, srv, http.MethodPost, "/reservations", ana, reserve)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "reserved", record["status"])
	recordID := int(record["id"].(float64))

	// Double booking is rejected on both paths.
	resp, _ = doJSON(t, srv, http.MethodPost, "/reservations", bruno, reserve)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodPost, "/loans", bruno, reserve)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Only the owner may cancel.
	cancelPath := fmt.Sprintf("/reservations/%d/cancel", recordID)
	resp, _ = doJSON(t, srv, http.MethodPost, cancelPath, bruno, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, cancelPath, ana, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A second cancel hits a record no longer reserved.
	resp, _ = doJSON(t, srv, http.MethodPost, cancelPath, ana, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoanReturnFlow(t *testing.T) {
	srv := newTestAPI(t)
	admin := registerAndLogin(t, srv, "root@universidade.com", "administrator")
	ana := registerAndLogin(t, srv, "ana@universidade.com", "teacher")

	resp, created := doJSON(t, srv, http.MethodPost, "/equipment", admin, map[string]any{
		"Name": "Notebook Dell", "Type": "laptop", "Quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	equipmentID := int(created["id"].(float64))

	resp, record := doJSON(t, srv, http.MethodPost, "/loans", ana, map[string]any{
		"equipment_id": equipmentID, "due_date": "10/01/2030",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	loanID := int(record["id"].(float64))

	resp, result := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/loans/%d/return", loanID), ana, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["on_time"])
	assert.Equal(t, float64(0), result["fee"])

	// Returning again is an invalid state transition.
	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/loans/%d/return", loanID), ana, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMaintenanceAdminOnly(t *testing.T) {
	srv := newTestAPI(t)
	teacher := registerAndLogin(t, srv, "ana@universidade.com", "teacher")
	admin := registerAndLogin(t, srv, "root@universidade.com", "administrator")

	resp, created := doJSON(t, srv, http.MethodPost, "/equipment", admin, map[string]any{
		"Name": "Projetor Epson", "Type": "projector", "Quantity": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	equipmentID := int(created["id"].(float64))

	report := map[string]any{"equipment_id": equipmentID, "problem": "não liga"}

	resp, _ = doJSON(t, srv, http.MethodPost, "/maintenance", teacher, report)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, ticket := doJSON(t, srv, http.MethodPost, "/maintenance", admin, report)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticketID := int(ticket["id"].(float64))

	resp, _ = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/maintenance/%d/resolve", ticketID), admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReports(t *testing.T) {
	srv := newTestAPI(t)
	teacher := registerAndLogin(t, srv, "ana@universidade.com", "teacher")

	resp, _ := doJSON(t, srv, http.MethodGet, "/reports/equipment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/reports/equipment", teacher, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSupportChannel(t *testing.T) {
	srv := newTestAPI(t)
	ana := registerAndLogin(t, srv, "ana@universidade.com", "teacher")

	resp, _ := doJSON(t, srv, http.MethodPost, "/support", ana, map[string]any{
		"message": "ajuda",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodPost, "/support", ana, map[string]any{
		"message": "o projetor da sala 12 não liga",
	})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}
