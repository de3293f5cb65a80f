package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/hollis/threadbare/internal/domain"
)

// maxBodyBytes bounds request bodies; bulk CSV uploads are the largest
// legitimate payloads.
const maxBodyBytes = 16 << 20

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError maps domain error codes onto HTTP statuses and hides
// internal details.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		status = http.StatusBadRequest
	case domain.ENOTFOUND:
		status = http.StatusNotFound
	case domain.ECONFLICT:
		status = http.StatusConflict
	}

	respond(w, status, map[string]string{"error": domain.ErrorMessage(err)})
}

// decode reads a JSON body into dst, rejecting unknown fields.
func decode(r *http.Request, dst any) error {
	const op = "handler.decode"

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid(op, "malformed JSON body: "+err.Error())
	}
	if dec.More() {
		return domain.Invalid(op, "request body must contain a single JSON value")
	}
	return nil
}
