package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riservarotundo/order-service/internal/order/application"
	"github.com/riservarotundo/order-service/internal/order/domain"
)

const receivedMessage = "Order received"

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

type orderResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Post("/api/orders", h.createOrder)
	r.Get("/health", h.health)

	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	defer r.Body.Close()

	o, err := domain.Parse(raw)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			h.log.Info("order rejected", "err", verr)
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	id, err := h.service.Submit(ctx, o)
	if err != nil {
		// detail stays in the logs, the caller gets a generic message
		h.log.Error("order submission failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store order"})
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{ID: id, Message: receivedMessage})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
