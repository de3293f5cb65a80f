package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/shopspring/decimal"
)

func (h *Handler) listDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discounts.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"discounts": discounts})
}

func (h *Handler) getDiscount(w http.ResponseWriter, r *http.Request) {
	d, err := h.discounts.Get(r.Context(), r.PathValue("identity"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) createDiscount(w http.ResponseWriter, r *http.Request) {
	var params domain.DiscountParams
	if err := decode(r, &params); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.discounts.Create(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (h *Handler) updateDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid("handler.updateDiscount", "malformed discount id"))
		return
	}

	var params domain.DiscountParams
	if err := decode(r, &params); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.discounts.Update(r.Context(), id, params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (h *Handler) deleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid("handler.deleteDiscount", "malformed discount id"))
		return
	}
	if err := h.discounts.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"deleted": id.String()})
}

type verifyDiscountRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// verifyDiscount resolves a code against a subtotal, reporting the amount
// it would grant.
func (h *Handler) verifyDiscount(w http.ResponseWriter, r *http.Request) {
	var req verifyDiscountRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	d, amount, err := h.discounts.Verify(r.Context(), req.Code, req.Subtotal)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"code":   d.Code,
		"amount": amount,
	})
}
