package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
)

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.store.ListCollections(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"collections": collections})
}

type collectionRequest struct {
	Handle   string     `json:"handle"`
	Title    string     `json:"title"`
	ParentID *uuid.UUID `json:"parentId"`
}

func (h *Handler) createCollection(w http.ResponseWriter, r *http.Request) {
	const op = "handler.createCollection"

	var req collectionRequest
	if err := decode(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Title == "" {
		respondError(w, domain.Invalid(op, "title is required"))
		return
	}

	handle := domain.Slugify(req.Handle)
	if handle == "" {
		handle = domain.Slugify(req.Title)
	}

	created, err := h.store.CreateCollection(r.Context(), domain.Collection{
		Handle:   handle,
		Title:    req.Title,
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, created)
}
