package handlers

import (
	"net/http"

	"github.com/murshadpk/storefront/internal/cartstore"
	"github.com/murshadpk/storefront/internal/pricing"
	"github.com/murshadpk/storefront/internal/services"
)

type cartResponse struct {
	Items     pricing.Cart `json:"items"`
	ItemCount int          `json:"itemCount"`
}

func newCartResponse(cart pricing.Cart) cartResponse {
	if cart == nil {
		cart = pricing.Cart{}
	}
	return cartResponse{Items: cart, ItemCount: cart.ItemCount()}
}

func (h *Handlers) cartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := cartstore.CartIDFromContext(r.Context())
	if !ok {
		h.loggerFromContext(r.Context()).Error("cart id missing from request context")
		h.writeError(w, r, http.StatusInternalServerError, "Internal server error")
		return "", false
	}
	return id, true
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	cart, err := h.carts.GetCart(r.Context(), cartID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, newCartResponse(cart))
}

type addCartItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      *string `json:"selectedSize"`
	Color     *string `json:"selectedColor"`
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.carts.AddToCart(r.Context(), cartID, services.AddToCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusOK, "Product added to cart", newCartResponse(cart))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if err := h.carts.ClearCart(r.Context(), cartID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, newCartResponse(nil))
}
