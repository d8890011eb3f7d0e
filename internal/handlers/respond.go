package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/murshadpk/storefront/internal/pricing"
	"github.com/murshadpk/storefront/internal/services"
)

const maxJSONBodyBytes = 1 << 20 // 1 MB

type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.loggerFromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.writeJSON(w, r, status, envelope{Status: true, Data: data})
}

func (h *Handlers) writeMessage(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	h.writeJSON(w, r, status, envelope{Status: true, Message: message, Data: data})
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, envelope{Status: false, Message: message})
}

type errorResponse struct {
	status  int
	message string
}

// sentinelResponses is checked in order; the first match wins.
var sentinelResponses = []struct {
	err      error
	response errorResponse
}{
	{services.ErrUnauthorized, errorResponse{http.StatusUnauthorized, "Please log in to continue"}},
	{services.ErrProductNotFound, errorResponse{http.StatusNotFound, "Product not found"}},
	{services.ErrOrderNotFound, errorResponse{http.StatusNotFound, "Order not found"}},
	{services.ErrPolicyNotFound, errorResponse{http.StatusNotFound, "Policy not found"}},
	{services.ErrOrderStatusConflict, errorResponse{http.StatusConflict, "This order can no longer be updated"}},
	{services.ErrOutOfStock, errorResponse{http.StatusBadRequest, "Out of stock"}},
	{services.ErrExceedsStock, errorResponse{http.StatusBadRequest, "Requested quantity exceeds available stock"}},
	{services.ErrVariantRequired, errorResponse{http.StatusBadRequest, "Please select a size and color"}},
	{services.ErrCartEmpty, errorResponse{http.StatusBadRequest, "Your cart is empty"}},
	{services.ErrInvalidCartInput, errorResponse{http.StatusBadRequest, "Invalid cart input"}},
	{services.ErrCheckoutInvalidInput, errorResponse{http.StatusBadRequest, "Invalid checkout details"}},
	{services.ErrInvalidSettings, errorResponse{http.StatusBadRequest, "Invalid settings"}},
	{services.ErrInvalidReview, errorResponse{http.StatusBadRequest, "Invalid review"}},
	{services.ErrInvalidPolicy, errorResponse{http.StatusBadRequest, "Invalid policy"}},
	{services.ErrInvalidShippingInput, errorResponse{http.StatusBadRequest, "Invalid shipping details"}},
	{services.ErrInvalidOrderLookup, errorResponse{http.StatusBadRequest, "Invalid order lookup"}},
}

// writeServiceError maps a service error onto a status code. Messages from
// UserError and pricing validation reach the client; anything else is logged
// and reported as a 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *pricing.ValidationError
	if errors.As(err, &validationErr) {
		h.writeError(w, r, http.StatusBadRequest, validationErr.Error())
		return
	}

	for _, candidate := range sentinelResponses {
		if !errors.Is(err, candidate.err) {
			continue
		}
		message := candidate.response.message
		var userErr services.UserError
		if errors.As(err, &userErr) && strings.TrimSpace(userErr.Message) != "" {
			message = userErr.Message
		}
		h.writeError(w, r, candidate.response.status, message)
		return
	}

	h.loggerFromContext(r.Context()).Error("request failed", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func pathInt64(r *http.Request, name string) (int64, bool) {
	value, err := strconv.ParseInt(strings.TrimSpace(mux.Vars(r)[name]), 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// flexibleID accepts an id sent either as a JSON number or a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}
