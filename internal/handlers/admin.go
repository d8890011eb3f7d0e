package handlers

import (
	"net/http"

	"github.com/murshadpk/storefront/internal/auth"
	"github.com/murshadpk/storefront/internal/services"
)

func (h *Handlers) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListCustomers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, users)
}

func (h *Handlers) ListShippingPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.admin.ListShippingPolicies(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, policies)
}

func (h *Handlers) AdminCreateShippingPolicy(w http.ResponseWriter, r *http.Request) {
	var input services.ShippingPolicyInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	policy, err := h.admin.CreateShippingPolicy(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusCreated, "Shipping policy created", policy)
}

func (h *Handlers) AdminUpdateShippingPolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.writeError(w, r, http.StatusBadRequest, "Invalid policy ID")
		return
	}
	var input services.ShippingPolicyInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	policy, err := h.admin.UpdateShippingPolicy(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusOK, "Shipping policy updated", policy)
}

func (h *Handlers) GetReturnPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.admin.GetReturnPolicy(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, policy)
}

func (h *Handlers) AdminSaveReturnPolicy(w http.ResponseWriter, r *http.Request) {
	var input services.ReturnPolicyInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	policy, err := h.admin.SaveReturnPolicy(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusOK, "Return policy saved", policy)
}

type shippingUpdateRequest struct {
	Email          string     `json:"email"`
	OrderID        flexibleID `json:"orderId"`
	ShippingMethod string     `json:"shippingMethod"`
	ShippingTerms  string     `json:"shippingTerms"`
	ShipmentDate   string     `json:"shipmentDate"`
	DeliveryDate   string     `json:"deliveryDate"`
}

func (h *Handlers) AdminUpdateShipping(w http.ResponseWriter, r *http.Request) {
	var req shippingUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	err := h.admin.UpdateShipping(r.Context(), services.ShippingUpdateInput{
		Email:          req.Email,
		OrderID:        string(req.OrderID),
		ShippingMethod: req.ShippingMethod,
		ShippingTerms:  req.ShippingTerms,
		ShipmentDate:   req.ShipmentDate,
		DeliveryDate:   req.DeliveryDate,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		h.loggerFromContext(r.Context()).Info("shipping details recorded", "admin_id", claims.UserID, "order_id", string(req.OrderID))
	}
	h.writeMessage(w, r, http.StatusOK, "Shipping details updated and email sent", nil)
}
