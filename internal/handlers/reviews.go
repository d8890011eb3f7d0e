package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/services"
)

func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(strings.TrimSpace(r.URL.Query().Get("productId")), 10, 64)
	if err != nil || productID <= 0 {
		h.writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}
	reviews, err := h.reviews.ListReviews(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, reviews)
}

type submitReviewRequest struct {
	ProductID flexibleID `json:"productId"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
}

func (h *Handlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		h.writeServiceError(w, r, services.ErrUnauthorized)
		return
	}

	var req submitReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := strconv.ParseInt(strings.TrimSpace(string(req.ProductID)), 10, 64)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}

	review, err := h.reviews.SubmitReview(r.Context(), services.SubmitReviewInput{
		ProductID: productID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusCreated, "Review submitted", review)
}
