package handler

import (
	"net/http"

	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/shopspring/decimal"
)

type combineRequest struct {
	Options []domain.OptionInput `json:"options"`
	Base    struct {
		Price          *decimal.Decimal `json:"price"`
		CompareAtPrice *decimal.Decimal `json:"compareAtPrice"`
		Inventory      *int32           `json:"inventory"`
		SKUPrefix      string           `json:"skuPrefix"`
	} `json:"base"`
}

// combineOptions previews the cartesian variant expansion without
// persisting anything.
func (h *Handler) combineOptions(w http.ResponseWriter, r *http.Request) {
	var req combineRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	variants := catalog.Combine(req.Options, catalog.VariantBase{
		Price:          req.Base.Price,
		CompareAtPrice: req.Base.CompareAtPrice,
		Inventory:      req.Base.Inventory,
		SKUPrefix:      req.Base.SKUPrefix,
	})
	respond(w, http.StatusOK, map[string]any{"variants": variants})
}
