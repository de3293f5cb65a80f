package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hollis/threadbare/internal/bulk"
	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/handler"
	"github.com/hollis/threadbare/internal/inventory"
	"github.com/hollis/threadbare/internal/order"
	"github.com/hollis/threadbare/internal/router"
	"github.com/hollis/threadbare/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *router.Router {
	t.Helper()

	st := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sync := catalog.NewSynchronizer(st, logger)
	discounts := discount.NewService(st, logger)

	h := handler.New(
		st,
		sync,
		bulk.NewImporter(st, sync, logger),
		bulk.NewExporter(st, logger),
		discounts,
		order.NewService(st, discounts, logger),
		inventory.NewLedger(st, logger),
		logger,
	)

	r := router.New(router.Recovery(logger))
	h.Routes(r)
	return r
}

func doJSON(t *testing.T, r *router.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProductLifecycle(t *testing.T) {
	r := newServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/products", `{
		"title": "Classic Tee",
		"options": [{"name": "Size", "values": ["S", "M"]}],
		"variants": [
			{"sku": "TEE-S", "price": "19.99", "optionValues": {"Size": "S"}, "inventory": 5},
			{"sku": "TEE-M", "price": "19.99", "optionValues": {"Size": "M"}, "inventory": 3}
		]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Product struct {
			ID     string `json:"ID"`
			Handle string `json:"Handle"`
		}
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "classic-tee", created.Product.Handle)

	// Fetch by handle and by id.
	rec = doJSON(t, r, http.MethodGet, "/api/products/classic-tee", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodGet, "/api/products/"+created.Product.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Partial update.
	rec = doJSON(t, r, http.MethodPut, "/api/products/classic-tee", `{"vendor": "Acme"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Duplicate handle conflicts.
	rec = doJSON(t, r, http.MethodPost, "/api/products", `{"title": "Classic Tee"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Delete, then 404.
	rec = doJSON(t, r, http.MethodDelete, "/api/products/classic-tee", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, http.MethodGet, "/api/products/classic-tee", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidationError(t *testing.T) {
	r := newServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/products", `{"vendor": "Acme"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/products", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVEndpoint(t *testing.T) {
	r := newServer(t)

	doc := "Handle,Title,Variant SKU,Variant Price\n" +
		"tee,Tee,TEE-1,19.99\n" +
		"tote,Tote,TOTE-1,35\n"

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", strings.NewReader(doc))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary bulk.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Failed)

	// Export contains both products.
	rec = doJSON(t, r, http.MethodGet, "/api/products/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "tee")
	assert.Contains(t, rec.Body.String(), "tote")
}

func TestDiscountVerifyEndpoint(t *testing.T) {
	r := newServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/discounts", `{
		"code": "ten", "type": "PERCENTAGE", "value": "10"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/api/discounts/verify", `{"code": "TEN", "subtotal": "100"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amount":"10"`)

	rec = doJSON(t, r, http.MethodPost, "/api/discounts/verify", `{"code": "NOPE", "subtotal": "100"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderEndpoints(t *testing.T) {
	r := newServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", `{
		"email": "buyer@example.com",
		"items": [{"sku": "TEE-M", "name": "Tee", "price": "19.99", "quantity": 2}],
		"totals": {"subtotal": "39.98", "shippingFee": "5", "total": "44.98", "currency": "USD"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, r, http.MethodPost, "/api/orders/"+created.ID+"/status", `{"status": "PAID"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Illegal jump.
	rec = doJSON(t, r, http.MethodPost, "/api/orders/"+created.ID+"/status", `{"status": "DELIVERED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
