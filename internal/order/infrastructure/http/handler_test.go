package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riservarotundo/order-service/internal/order/application"
	"github.com/riservarotundo/order-service/internal/order/domain"
)

const validBody = `{
	"product_name": "Bundle A",
	"quantity": 2,
	"total_price": 19.98,
	"full_name": "Mario Rossi",
	"email": "mario@example.com",
	"phone": "+391234567",
	"address_line": "Via Roma 1",
	"city": "Roma",
	"postal_code": "00100",
	"newsletter_opt_in": true
}`

type stubRepo struct {
	id  string
	err error
}

func (s *stubRepo) Save(context.Context, string, domain.Order) (string, error) {
	return s.id, s.err
}

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) Notify(context.Context, string, string, string) error {
	s.calls++
	return s.err
}

func newTestHandler(repo application.OrderRepository, notifier application.Notifier) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := application.NewService(log, repo, notifier, "merchant@example.com")
	return NewHandler(log, svc).Routes()
}

func TestCreateOrderSuccess(t *testing.T) {
	notifier := &stubNotifier{}
	h := newTestHandler(&stubRepo{id: "order-789"}, notifier)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validBody)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "order-789", resp.ID)
	assert.Equal(t, "Order received", resp.Message)
	assert.Equal(t, 1, notifier.calls)
}

func TestCreateOrderMalformedJSON(t *testing.T) {
	h := newTestHandler(&stubRepo{id: "x"}, &stubNotifier{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"quantity":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderValidationFailure(t *testing.T) {
	body := strings.Replace(validBody, `"quantity": 2`, `"quantity": 0`, 1)
	h := newTestHandler(&stubRepo{id: "x"}, &stubNotifier{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "quantity", resp.Fields[0].Field)
}

func TestCreateOrderPersistenceFailure(t *testing.T) {
	notifier := &stubNotifier{}
	repo := &stubRepo{err: errors.New("pg: password authentication failed for user")}
	h := newTestHandler(repo, notifier)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validBody)))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 0, notifier.calls)

	// internal store details never reach the caller
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "failed to store order")
}

func TestCreateOrderNotificationFailureStillSucceeds(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("dial tcp: i/o timeout")}
	h := newTestHandler(&stubRepo{id: "order-999"}, notifier)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validBody)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "order-999")
	assert.NotContains(t, rec.Body.String(), "timeout")
}

func TestCORSHeadersOnCrossOriginRequest(t *testing.T) {
	h := newTestHandler(&stubRepo{id: "x"}, &stubNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validBody))
	req.Header.Set("Origin", "http://shop.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(&stubRepo{id: "x"}, &stubNotifier{})

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "http://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(&stubRepo{id: "x"}, &stubNotifier{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
