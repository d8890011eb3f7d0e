package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/murshadpk/storefront/internal/services"
)

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.PricingSettings(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeData(w, r, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	DeliveryCharge        *decimal.Decimal `json:"deliveryCharge"`
	TaxPercentage         *decimal.Decimal `json:"taxPercentage"`
	FreeShippingThreshold *decimal.Decimal `json:"freeShippingThreshold"`
	CODCharge             *decimal.Decimal `json:"codCharge"`
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.DeliveryCharge == nil || req.TaxPercentage == nil || req.FreeShippingThreshold == nil || req.CODCharge == nil {
		h.writeError(w, r, http.StatusBadRequest, "All fields are required")
		return
	}

	settings, err := h.settings.UpdateSettings(r.Context(), services.SettingsInput{
		DeliveryCharge:        *req.DeliveryCharge,
		TaxPercentage:         *req.TaxPercentage,
		FreeShippingThreshold: *req.FreeShippingThreshold,
		CODCharge:             *req.CODCharge,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.writeMessage(w, r, http.StatusOK, "Settings updated", settings)
}
