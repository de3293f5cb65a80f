// Package handler exposes the catalog, discount, inventory and order
// services over a JSON API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hollis/threadbare/internal/bulk"
	"github.com/hollis/threadbare/internal/cache"
	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/discount"
	"github.com/hollis/threadbare/internal/inventory"
	"github.com/hollis/threadbare/internal/order"
	"github.com/hollis/threadbare/internal/router"
	"github.com/hollis/threadbare/internal/store"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	store        store.Store
	synchronizer *catalog.Synchronizer
	importer     *bulk.Importer
	exporter     *bulk.Exporter
	discounts    *discount.Service
	orders       *order.Service
	ledger       *inventory.Ledger
	listings     *cache.Cache
	logger       *slog.Logger
}

func New(
	st store.Store,
	synchronizer *catalog.Synchronizer,
	importer *bulk.Importer,
	exporter *bulk.Exporter,
	discounts *discount.Service,
	orders *order.Service,
	ledger *inventory.Ledger,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:        st,
		synchronizer: synchronizer,
		importer:     importer,
		exporter:     exporter,
		discounts:    discounts,
		orders:       orders,
		ledger:       ledger,
		listings:     cache.New(30*time.Second, 256),
		logger:       logger,
	}
}

// Routes registers every endpoint on the router.
func (h *Handler) Routes(r *router.Router) {
	r.Get("/health", h.health)

	r.Get("/api/products", h.listProducts)
	r.Post("/api/products", h.createProduct)
	r.Post("/api/products/combine", h.combineOptions)
	r.Get("/api/products/export", h.exportProducts)
	r.Post("/api/products/import", h.importProducts)
	r.Get("/api/products/{identity}", h.getProduct)
	r.Put("/api/products/{identity}", h.updateProduct)
	r.Delete("/api/products/{identity}", h.deleteProduct)

	r.Get("/api/collections", h.listCollections)
	r.Post("/api/collections", h.createCollection)

	r.Get("/api/discounts", h.listDiscounts)
	r.Post("/api/discounts", h.createDiscount)
	r.Post("/api/discounts/verify", h.verifyDiscount)
	r.Get("/api/discounts/{identity}", h.getDiscount)
	r.Put("/api/discounts/{id}", h.updateDiscount)
	r.Delete("/api/discounts/{id}", h.deleteDiscount)

	r.Get("/api/orders", h.listOrders)
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders/{id}", h.getOrder)
	r.Post("/api/orders/{id}/status", h.updateOrderStatus)

	r.Get("/api/variants/{id}/inventory", h.listInventory)
	r.Post("/api/variants/{id}/inventory", h.moveInventory)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
