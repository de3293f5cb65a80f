package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
)

// listProducts serves the public product listing through the response
// cache. Entries go stale for up to the TTL after a write.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "products:list"

	if cached, ok := h.listings.Get(cacheKey); ok {
		respond(w, http.StatusOK, cached)
		return
	}

	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	body := map[string]any{"products": products}
	h.listings.Set(cacheKey, body)
	respond(w, http.StatusOK, body)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.resolveProduct(r, r.PathValue("identity"))
	if err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.productDetail(r, product)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, detail)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload domain.ProductPayload
	if err := decode(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.synchronizer.Synchronize(r.Context(), "", &payload)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, detail)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var payload domain.ProductPayload
	if err := decode(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	detail, err := h.synchronizer.Synchronize(r.Context(), r.PathValue("identity"), &payload)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, detail)
}

// deleteProduct removes the product and every owned child row, inventory
// levels included, in one transaction.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.resolveProduct(r, r.PathValue("identity"))
	if err != nil {
		respondError(w, err)
		return
	}

	err = h.store.WithTx(r.Context(), func(q store.Querier) error {
		if err := q.DeleteInventoryLevelsForProduct(r.Context(), product.ID); err != nil {
			return err
		}
		return q.DeleteProduct(r.Context(), product.ID)
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"deleted": product.ID.String()})
}

// resolveProduct tries an id-shaped identity as a surrogate id before
// falling back to handle lookup.
func (h *Handler) resolveProduct(r *http.Request, identity string) (domain.Product, error) {
	ctx := r.Context()

	if domain.LooksLikeID(identity) {
		id, _ := uuid.Parse(identity)
		p, err := h.store.GetProductByID(ctx, id)
		if err == nil {
			return p, nil
		}
		if domain.ErrorCode(err) != domain.ENOTFOUND {
			return domain.Product{}, err
		}
	}
	return h.store.GetProductByHandle(ctx, identity)
}

func (h *Handler) productDetail(r *http.Request, product domain.Product) (domain.ProductDetail, error) {
	ctx := r.Context()

	options, err := h.store.GetProductOptions(ctx, product.ID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	variants, err := h.store.GetProductVariants(ctx, product.ID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	media, err := h.store.GetProductMedia(ctx, product.ID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	metafields, err := h.store.GetProductMetafields(ctx, product.ID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	collections, err := h.store.GetProductCollections(ctx, product.ID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	return domain.ProductDetail{
		Product:     product,
		Options:     options,
		Variants:    variants,
		Media:       media,
		Metafields:  metafields,
		Collections: collections,
	}, nil
}
