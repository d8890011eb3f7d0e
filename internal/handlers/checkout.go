package handlers

import (
	"net/http"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/models"
	"github.com/murshadpk/storefront/internal/services"
)

type couponRequest struct {
	Code string `json:"couponCode"`
}

func (h *Handlers) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.coupons.ValidateCoupon(r.Context(), req.Code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, envelope{Status: result.Valid, Message: result.Message, Data: result})
}

func (h *Handlers) Quote(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	var req couponRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	quote, err := h.checkout.Quote(r.Context(), cartID, req.Code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, quote)
}

type placeOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	CouponCode      string                 `json:"couponCode"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req placeOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.PaymentMethod != "" && req.PaymentMethod != models.PaymentCashOnDelivery {
		h.writeError(w, r, http.StatusBadRequest, "Only cash on delivery is supported")
		return
	}

	input := services.PlaceOrderInput{
		CartID:     cartID,
		Address:    req.ShippingAddress,
		CouponCode: req.CouponCode,
	}
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		userID := claims.UserID
		input.UserID = &userID
	}

	order, err := h.checkout.PlaceOrder(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusCreated, "Order placed successfully", order)
}
