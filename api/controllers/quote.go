package controllers

import (
	"net/http"
	"strings"

	"github.com/printlabth/printlab-backend/api/responses"
	"github.com/printlabth/printlab-backend/api/validators"
	"github.com/printlabth/printlab-backend/internal/pricing"
	"github.com/printlabth/printlab-backend/pkg/enums"
	pkgerrors "github.com/printlabth/printlab-backend/pkg/errors"
	"github.com/printlabth/printlab-backend/pkg/logger"
)

type quoteRequest struct {
	Weight       int    `json:"weight" validate:"required,gt=0"`
	Material     string `json:"material" validate:"required"`
	Quantity     int    `json:"quantity" validate:"omitempty,gt=0"`
	DeliveryType string `json:"deliveryType" validate:"omitempty,oneof=STANDARD EXPRESS"`
}

// Quote prices a hypothetical order without persisting anything.
func Quote(engine *pricing.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing engine unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if payload.Quantity == 0 {
			payload.Quantity = 1
		}
		delivery, err := enums.ParseDeliveryType(payload.DeliveryType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery type"))
			return
		}
		material := enums.ParseMaterial(strings.ToUpper(strings.TrimSpace(payload.Material)))

		quote, err := engine.QuoteOrder(payload.Weight, material, payload.Quantity, delivery)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price quote"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"quote": quote})
	}
}
