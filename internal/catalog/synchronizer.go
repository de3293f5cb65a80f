package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
)

// Synchronizer reconciles a desired product state against persisted state.
// Each call runs in a single transaction: scalar fields are patched, and any
// child set present in the payload is replaced wholesale (delete then
// recreate). Readers never observe an intermediate state.
type Synchronizer struct {
	store  store.Store
	logger *slog.Logger
}

func NewSynchronizer(st store.Store, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{store: st, logger: logger}
}

// Synchronize applies payload to the product named by identity. An empty
// identity creates a new product; otherwise identity is resolved as a
// surrogate id first, falling back to handle lookup. The fully populated
// product is re-fetched and returned after all phases commit.
func (s *Synchronizer) Synchronize(ctx context.Context, identity string, payload *domain.ProductPayload) (domain.ProductDetail, error) {
	const op = "catalog.Synchronize"

	if payload == nil {
		return domain.ProductDetail{}, domain.Invalid(op, "payload is required")
	}
	if err := domain.Validate(op, payload); err != nil {
		return domain.ProductDetail{}, err
	}

	var detail domain.ProductDetail
	err := s.store.WithTx(ctx, func(q store.Querier) error {
		product, created, err := s.resolveOrCreate(ctx, q, identity, payload)
		if err != nil {
			return err
		}

		if !created {
			product, err = s.applyScalars(ctx, q, product, payload)
			if err != nil {
				return err
			}
		}

		if payload.HasCollections() {
			if err := s.replaceCollections(ctx, q, product.ID, payload); err != nil {
				return err
			}
		}
		if payload.Media != nil {
			if err := s.replaceMedia(ctx, q, product.ID, payload.Media); err != nil {
				return err
			}
		}

		optionOrder, err := s.replaceOptions(ctx, q, product.ID, payload)
		if err != nil {
			return err
		}

		if payload.Variants != nil {
			if err := s.replaceVariants(ctx, q, product.ID, payload.Variants, optionOrder); err != nil {
				return err
			}
		}
		if payload.Metafields != nil {
			if err := s.replaceMetafields(ctx, q, product.ID, payload.Metafields); err != nil {
				return err
			}
		}

		detail, err = s.fetchDetail(ctx, q, product.ID)
		return err
	})
	if err != nil {
		return domain.ProductDetail{}, err
	}

	s.logger.InfoContext(ctx, "product synchronized",
		slog.String("product_id", detail.Product.ID.String()),
		slog.String("handle", detail.Product.Handle),
		slog.Int("variants", len(detail.Variants)),
	)
	return detail, nil
}

// resolveOrCreate finds the target product, or creates the scalar row when
// identity is empty. Id-shaped identities are tried as id first with a
// fallback to handle lookup.
func (s *Synchronizer) resolveOrCreate(ctx context.Context, q store.Querier, identity string, payload *domain.ProductPayload) (domain.Product, bool, error) {
	const op = "catalog.resolveOrCreate"

	if identity == "" {
		p, err := s.createProduct(ctx, q, payload)
		return p, true, err
	}

	if domain.LooksLikeID(identity) {
		id, _ := uuid.Parse(identity)
		p, err := q.GetProductByID(ctx, id)
		if err == nil {
			return p, false, nil
		}
		if domain.ErrorCode(err) != domain.ENOTFOUND {
			return domain.Product{}, false, err
		}
	}

	p, err := q.GetProductByHandle(ctx, identity)
	if err != nil {
		return domain.Product{}, false, err
	}
	return p, false, nil
}

func (s *Synchronizer) createProduct(ctx context.Context, q store.Querier, payload *domain.ProductPayload) (domain.Product, error) {
	const op = "catalog.createProduct"

	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		return domain.Product{}, domain.Invalid(op, "title is required to create a product")
	}

	handle := ""
	if payload.Handle != nil {
		handle = domain.Slugify(*payload.Handle)
	}
	if handle == "" {
		handle = domain.Slugify(*payload.Title)
	}

	p := domain.Product{
		Handle: handle,
		Title:  *payload.Title,
		Status: domain.ProductStatusDraft,
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Status != nil {
		p.Status = *payload.Status
	}
	if payload.Vendor != nil {
		p.Vendor = *payload.Vendor
	}
	if payload.Category != nil {
		p.Category = *payload.Category
	}
	if payload.Tags != nil {
		p.Tags = payload.Tags
	}
	if payload.PublishedAt != nil {
		p.PublishedAt = payload.PublishedAt
	}
	return q.CreateProduct(ctx, p)
}

// applyScalars patches only the scalar fields present in the payload. Absent
// fields keep their persisted values.
func (s *Synchronizer) applyScalars(ctx context.Context, q store.Querier, p domain.Product, payload *domain.ProductPayload) (domain.Product, error) {
	if payload.Title != nil {
		p.Title = *payload.Title
	}
	if payload.Handle != nil && strings.TrimSpace(*payload.Handle) != "" {
		p.Handle = domain.Slugify(*payload.Handle)
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Status != nil {
		p.Status = *payload.Status
	}
	if payload.Vendor != nil {
		p.Vendor = *payload.Vendor
	}
	if payload.Category != nil {
		p.Category = *payload.Category
	}
	if payload.Tags != nil {
		p.Tags = payload.Tags
	}
	if payload.PublishedAt != nil {
		p.PublishedAt = payload.PublishedAt
	}
	return q.UpdateProduct(ctx, p)
}

// replaceCollections resolves the submitted id and handle sets into one
// ordered membership list. Ids come first, then handle resolutions, with
// position assigned by insertion index.
func (s *Synchronizer) replaceCollections(ctx context.Context, q store.Querier, productID uuid.UUID, payload *domain.ProductPayload) error {
	if err := q.DeleteProductCollections(ctx, productID); err != nil {
		return err
	}

	ids := make([]uuid.UUID, 0, len(payload.CollectionIDs)+len(payload.CollectionHandles))
	seen := make(map[uuid.UUID]bool)
	for _, id := range payload.CollectionIDs {
		if _, err := q.GetCollectionByID(ctx, id); err != nil {
			return err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, handle := range payload.CollectionHandles {
		c, err := q.GetCollectionByHandle(ctx, handle)
		if err != nil {
			return err
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			ids = append(ids, c.ID)
		}
	}

	for i, id := range ids {
		err := q.CreateProductCollection(ctx, domain.ProductCollection{
			ProductID:    productID,
			CollectionID: id,
			Position:     int32(i + 1),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) replaceMedia(ctx context.Context, q store.Querier, productID uuid.UUID, media []domain.MediaInput) error {
	if err := q.DeleteProductMedia(ctx, productID); err != nil {
		return err
	}
	for i, m := range media {
		mediaType := m.Type
		if mediaType == "" {
			mediaType = domain.MediaTypeImage
		}
		_, err := q.CreateProductMedia(ctx, domain.ProductMedia{
			ProductID: productID,
			URL:       m.URL,
			Type:      mediaType,
			Alt:       m.Alt,
			Position:  int32(i + 1),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// replaceOptions installs the effective option set and returns the option
// order used for variant title derivation. When the payload declares
// options they replace the existing set. When options are absent but
// variants are present and the product has none declared, the option schema
// is inferred from the variants' optionValues keys.
func (s *Synchronizer) replaceOptions(ctx context.Context, q store.Querier, productID uuid.UUID, payload *domain.ProductPayload) ([]string, error) {
	var inputs []domain.OptionInput

	switch {
	case payload.Options != nil:
		inputs = payload.Options
	case payload.Variants != nil:
		existing, err := q.GetProductOptions(ctx, productID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			order := make([]string, len(existing))
			for i, o := range existing {
				order[i] = o.Name
			}
			return order, nil
		}
		inputs = InferOptions(payload.Variants)
	default:
		existing, err := q.GetProductOptions(ctx, productID)
		if err != nil {
			return nil, err
		}
		order := make([]string, len(existing))
		for i, o := range existing {
			order[i] = o.Name
		}
		return order, nil
	}

	if err := q.DeleteProductOptions(ctx, productID); err != nil {
		return nil, err
	}
	order := make([]string, 0, len(inputs))
	for i, in := range inputs {
		_, err := q.CreateProductOption(ctx, domain.ProductOption{
			ProductID: productID,
			Name:      in.Name,
			Values:    in.Values,
			Position:  int32(i + 1),
		})
		if err != nil {
			return nil, err
		}
		order = append(order, in.Name)
	}
	return order, nil
}

// replaceVariants drops every inventory level and variant of the product and
// recreates them in submitted order. Titles are re-derived against the newly
// effective option order. Variants carrying inventory seed one level at the
// named location with available = onHand = given, committed and unavailable
// zeroed.
func (s *Synchronizer) replaceVariants(ctx context.Context, q store.Querier, productID uuid.UUID, variants []domain.VariantInput, optionOrder []string) error {
	if err := q.DeleteInventoryLevelsForProduct(ctx, productID); err != nil {
		return err
	}
	if err := q.DeleteProductVariants(ctx, productID); err != nil {
		return err
	}

	for i, in := range variants {
		track := in.TrackInventory == nil || *in.TrackInventory

		created, err := q.CreateProductVariant(ctx, domain.ProductVariant{
			ProductID:      productID,
			Title:          DeriveTitle(in.Title, optionOrder, in.OptionValues),
			SKU:            in.SKU,
			Price:          in.Price,
			CompareAtPrice: in.CompareAtPrice,
			Cost:           in.Cost,
			Weight:         in.Weight,
			OptionValues:   in.OptionValues,
			ImageURL:       in.ImageURL,
			TrackInventory: track,
			Position:       int32(i + 1),
		})
		if err != nil {
			return err
		}

		if in.Inventory == nil || !track {
			continue
		}
		locationName := domain.DefaultLocationName
		if in.LocationName != nil && strings.TrimSpace(*in.LocationName) != "" {
			locationName = *in.LocationName
		}
		location, err := s.resolveLocation(ctx, q, locationName)
		if err != nil {
			return err
		}
		_, err = q.UpsertInventoryLevel(ctx, domain.InventoryLevel{
			VariantID:  created.ID,
			LocationID: location.ID,
			Available:  *in.Inventory,
			OnHand:     *in.Inventory,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) resolveLocation(ctx context.Context, q store.Querier, name string) (domain.Location, error) {
	location, err := q.GetLocationByName(ctx, name)
	if err == nil {
		return location, nil
	}
	if domain.ErrorCode(err) != domain.ENOTFOUND {
		return domain.Location{}, err
	}
	return q.CreateLocation(ctx, domain.Location{Name: name})
}

func (s *Synchronizer) replaceMetafields(ctx context.Context, q store.Querier, productID uuid.UUID, fields []domain.MetafieldInput) error {
	if err := q.DeleteProductMetafields(ctx, productID); err != nil {
		return err
	}
	for _, in := range fields {
		set := in.Set
		if set == "" {
			set = domain.MetafieldSetProduct
		}
		_, err := q.CreateProductMetafield(ctx, domain.ProductMetafield{
			OwnerID:   productID,
			Namespace: in.Namespace,
			Key:       in.Key,
			Type:      in.Type,
			Value:     in.Value,
			Set:       set,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Synchronizer) fetchDetail(ctx context.Context, q store.Querier, productID uuid.UUID) (domain.ProductDetail, error) {
	product, err := q.GetProductByID(ctx, productID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	options, err := q.GetProductOptions(ctx, productID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	variants, err := q.GetProductVariants(ctx, productID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	media, err := q.GetProductMedia(ctx, productID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	metafields, err := q.GetProductMetafields(ctx, productID)
	if err != nil {
		return domain.ProductDetail{}, err
	}
	collections, err := q.GetProductCollections(ctx, productID)
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
