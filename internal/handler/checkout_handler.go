package handler

import (
	"net/http"

	"checkout-kart/internal/model"
	"checkout-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles the payment step HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /api/checkout requests. An accepted submission
// returns 202: the order is created asynchronously and its outcome is read
// from the status endpoint.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, resp)
}

// Totals handles GET /api/checkout/{buyerID}/totals requests. The optional
// productId query parameter selects a single cart item.
func (h *CheckoutHandler) Totals(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyerID")
	productID := r.URL.Query().Get("productId")

	resp, err := h.service.Totals(r.Context(), buyerID, productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Expiry handles POST /api/checkout/expiry requests.
func (h *CheckoutHandler) Expiry(w http.ResponseWriter, r *http.Request) {
	var req model.ExpiryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.service.CheckExpiry(req.ExpDate))
}

// Status handles GET /api/checkout/{buyerID}/status requests.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	buyerID := chi.URLParam(r, "buyerID")

	writeJSON(w, http.StatusOK, h.service.Status(buyerID))
}
