package handlers

import "net/http"

func (h *Handlers) TrackOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := h.orders.TrackOrder(r.Context(), id, r.URL.Query().Get("email"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, order)
}

func (h *Handlers) AdminGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "Invalid order ID")
		return
	}
	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, order)
}
