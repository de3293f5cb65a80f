package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid("handler.getOrder", "malformed order id"))
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var params domain.OrderParams
	if err := decode(r, &params); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.orders.Create(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.Invalid("handler.updateOrderStatus", "malformed order id"))
		return
	}

	var req orderStatusRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.orders.Transition(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, updated)
}
