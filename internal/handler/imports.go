package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/hollis/threadbare/internal/domain"
)

// importProducts accepts either a raw CSV document (text/csv) or a JSON
// array of product payloads and returns the per-product summary.
func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	const op = "handler.importProducts"

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/csv") {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			respondError(w, domain.Invalid(op, "reading request body failed"))
			return
		}
		summary, err := h.importer.ImportCSV(r.Context(), string(body))
		if err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, summary)
		return
	}

	var payloads []domain.ProductPayload
	if err := decode(r, &payloads); err != nil {
		respondError(w, err)
		return
	}
	summary, err := h.importer.ImportPayloads(r.Context(), payloads)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, summary)
}

// exportProducts streams the whole catalog as CSV.
func (h *Handler) exportProducts(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.ExportCSV(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}
