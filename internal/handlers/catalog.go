package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetProductBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, detail)
}

func (h *Handlers) GetProductName(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "Invalid product ID")
		return
	}
	name, err := h.catalog.GetProductName(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, map[string]string{"name": name})
}
