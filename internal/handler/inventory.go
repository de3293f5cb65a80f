package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
)

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	variantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid("handler.listInventory", "malformed variant id"))
		return
	}

	levels, err := h.ledger.Levels(r.Context(), variantID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"levels": levels})
}

type inventoryMoveRequest struct {
	Location string `json:"location"`
	Action   string `json:"action"`
	Quantity int32  `json:"quantity"`
}

// moveInventory applies one stock movement to the variant at the named
// location (default location when unset).
func (h *Handler) moveInventory(w http.ResponseWriter, r *http.Request) {
	const op = "handler.moveInventory"

	variantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid(op, "malformed variant id"))
		return
	}

	var req inventoryMoveRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Location == "" {
		req.Location = domain.DefaultLocationName
	}

	location, err := h.store.GetLocationByName(r.Context(), req.Location)
	if err != nil {
		respondError(w, err)
		return
	}

	var level domain.InventoryLevel
	switch req.Action {
	case "set":
		level, err = h.ledger.SetOnHand(r.Context(), variantID, location.ID, req.Quantity)
	case "adjust":
		level, err = h.ledger.Adjust(r.Context(), variantID, location.ID, req.Quantity)
	case "commit":
		level, err = h.ledger.Commit(r.Context(), variantID, location.ID, req.Quantity)
	case "release":
		level, err = h.ledger.Release(r.Context(), variantID, location.ID, req.Quantity)
	case "fulfill":
		level, err = h.ledger.Fulfill(r.Context(), variantID, location.ID, req.Quantity)
	case "set_unavailable":
		level, err = h.ledger.SetUnavailable(r.Context(), variantID, location.ID, req.Quantity)
	default:
		respondError(w, domain.Invalid(op, "unknown inventory action"))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, level)
}
