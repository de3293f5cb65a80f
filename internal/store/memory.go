package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
)

// MemStore is an in-memory Store used by tests and local development.
// WithTx snapshots all state up front and restores it when fn fails, giving
// the same all-or-nothing behavior as the PostgreSQL implementation.
type MemStore struct {
	mu   sync.Mutex
	data memData
}

type memData struct {
	products        map[uuid.UUID]domain.Product
	options         map[uuid.UUID][]domain.ProductOption
	variants        map[uuid.UUID][]domain.ProductVariant
	media           map[uuid.UUID][]domain.ProductMedia
	metafields      map[uuid.UUID][]domain.ProductMetafield
	collections     map[uuid.UUID]domain.Collection
	productColls    map[uuid.UUID][]domain.ProductCollection
	locations       map[uuid.UUID]domain.Location
	inventoryLevels map[invKey]domain.InventoryLevel
	discounts       map[uuid.UUID]domain.Discount
	orders          map[uuid.UUID]domain.Order
}

type invKey struct {
	variantID  uuid.UUID
	locationID uuid.UUID
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: newMemData()}
}

func newMemData() memData {
	return memData{
		products:        make(map[uuid.UUID]domain.Product),
		options:         make(map[uuid.UUID][]domain.ProductOption),
		variants:        make(map[uuid.UUID][]domain.ProductVariant),
		media:           make(map[uuid.UUID][]domain.ProductMedia),
		metafields:      make(map[uuid.UUID][]domain.ProductMetafield),
		collections:     make(map[uuid.UUID]domain.Collection),
		productColls:    make(map[uuid.UUID][]domain.ProductCollection),
		locations:       make(map[uuid.UUID]domain.Location),
		inventoryLevels: make(map[invKey]domain.InventoryLevel),
		discounts:       make(map[uuid.UUID]domain.Discount),
		orders:          make(map[uuid.UUID]domain.Order),
	}
}

func (d memData) clone() memData {
	c := newMemData()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.options {
		c.options[k] = append([]domain.ProductOption(nil), v...)
	}
	for k, v := range d.variants {
		c.variants[k] = append([]domain.ProductVariant(nil), v...)
	}
	for k, v := range d.media {
		c.media[k] = append([]domain.ProductMedia(nil), v...)
	}
	for k, v := range d.metafields {
		c.metafields[k] = append([]domain.ProductMetafield(nil), v...)
	}
	for k, v := range d.collections {
		c.collections[k] = v
	}
	for k, v := range d.productColls {
		c.productColls[k] = append([]domain.ProductCollection(nil), v...)
	}
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.inventoryLevels {
		c.inventoryLevels[k] = v
	}
	for k, v := range d.discounts {
		c.discounts[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	return c
}

// WithTx implements Store. The mutex serializes units of work, so readers
// never observe intermediate state.
func (s *MemStore) WithTx(ctx context.Context, fn func(q Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn((*memQuerier)(s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// memQuerier is the unlocked view used inside WithTx.
type memQuerier MemStore

func (s *MemStore) locked(fn func(q *memQuerier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn((*memQuerier)(s))
}

// =============================================================================
// Products
// =============================================================================

func (q *memQuerier) GetProductByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := q.data.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (q *memQuerier) GetProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	for _, p := range q.data.products {
		if p.Handle == handle {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (q *memQuerier) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	for _, existing := range q.data.products {
		if existing.Handle == p.Handle {
			return domain.Product{}, domain.ErrDuplicateHandle
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	q.data.products[p.ID] = p
	return p, nil
}

func (q *memQuerier) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if _, ok := q.data.products[p.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	for _, existing := range q.data.products {
		if existing.Handle == p.Handle && existing.ID != p.ID {
			return domain.Product{}, domain.ErrDuplicateHandle
		}
	}
	p.UpdatedAt = time.Now().UTC()
	q.data.products[p.ID] = p
	return p, nil
}

func (q *memQuerier) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, ok := q.data.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(q.data.products, id)
	delete(q.data.options, id)
	delete(q.data.variants, id)
	delete(q.data.media, id)
	delete(q.data.metafields, id)
	delete(q.data.productColls, id)
	return nil
}

func (q *memQuerier) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(q.data.products))
	for _, p := range q.data.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

// =============================================================================
// Options
// =============================================================================

func (q *memQuerier) GetProductOptions(ctx context.Context, productID uuid.UUID) ([]domain.ProductOption, error) {
	return append([]domain.ProductOption(nil), q.data.options[productID]...), nil
}

func (q *memQuerier) CreateProductOption(ctx context.Context, o domain.ProductOption) (domain.ProductOption, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	q.data.options[o.ProductID] = append(q.data.options[o.ProductID], o)
	return o, nil
}

func (q *memQuerier) DeleteProductOptions(ctx context.Context, productID uuid.UUID) error {
	delete(q.data.options, productID)
	return nil
}

// =============================================================================
// Variants
// =============================================================================

func (q *memQuerier) GetProductVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error) {
	return append([]domain.ProductVariant(nil), q.data.variants[productID]...), nil
}

func (q *memQuerier) CreateProductVariant(ctx context.Context, v domain.ProductVariant) (domain.ProductVariant, error) {
	if v.SKU != nil && *v.SKU != "" {
		for _, vs := range q.data.variants {
			for _, existing := range vs {
				if existing.SKU != nil && *existing.SKU == *v.SKU {
					return domain.ProductVariant{}, domain.ErrDuplicateSKU
				}
			}
		}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	q.data.variants[v.ProductID] = append(q.data.variants[v.ProductID], v)
	return v, nil
}

func (q *memQuerier) DeleteProductVariants(ctx context.Context, productID uuid.UUID) error {
	delete(q.data.variants, productID)
	return nil
}

// =============================================================================
// Media
// =============================================================================

func (q *memQuerier) GetProductMedia(ctx context.Context, productID uuid.UUID) ([]domain.ProductMedia, error) {
	return append([]domain.ProductMedia(nil), q.data.media[productID]...), nil
}

func (q *memQuerier) CreateProductMedia(ctx context.Context, m domain.ProductMedia) (domain.ProductMedia, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	q.data.media[m.ProductID] = append(q.data.media[m.ProductID], m)
	return m, nil
}

func (q *memQuerier) DeleteProductMedia(ctx context.Context, productID uuid.UUID) error {
	delete(q.data.media, productID)
	return nil
}

// =============================================================================
// Metafields
// =============================================================================

func (q *memQuerier) GetProductMetafields(ctx context.Context, productID uuid.UUID) ([]domain.ProductMetafield, error) {
	return append([]domain.ProductMetafield(nil), q.data.metafields[productID]...), nil
}

func (q *memQuerier) CreateProductMetafield(ctx context.Context, f domain.ProductMetafield) (domain.ProductMetafield, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	q.data.metafields[f.OwnerID] = append(q.data.metafields[f.OwnerID], f)
	return f, nil
}

func (q *memQuerier) DeleteProductMetafields(ctx context.Context, productID uuid.UUID) error {
	delete(q.data.metafields, productID)
	return nil
}

// =============================================================================
// Collections
// =============================================================================

func (q *memQuerier) GetCollectionByID(ctx context.Context, id uuid.UUID) (domain.Collection, error) {
	c, ok := q.data.collections[id]
	if !ok {
		return domain.Collection{}, domain.ErrCollectionNotFound
	}
	return c, nil
}

func (q *memQuerier) GetCollectionByHandle(ctx context.Context, handle string) (domain.Collection, error) {
	for _, c := range q.data.collections {
		if c.Handle == handle {
			return c, nil
		}
	}
	return domain.Collection{}, domain.ErrCollectionNotFound
}

func (q *memQuerier) CreateCollection(ctx context.Context, c domain.Collection) (domain.Collection, error) {
	for _, existing := range q.data.collections {
		if existing.Handle == c.Handle {
			return domain.Collection{}, domain.Conflict("collection.create", "collection handle already exists")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now().UTC()
	q.data.collections[c.ID] = c
	return c, nil
}

func (q *memQuerier) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0, len(q.data.collections))
	for _, c := range q.data.collections {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

func (q *memQuerier) GetProductCollections(ctx context.Context, productID uuid.UUID) ([]domain.ProductCollection, error) {
	return append([]domain.ProductCollection(nil), q.data.productColls[productID]...), nil
}

func (q *memQuerier) CreateProductCollection(ctx context.Context, pc domain.ProductCollection) error {
	if _, ok := q.data.collections[pc.CollectionID]; !ok {
		return domain.ErrCollectionNotFound
	}
	q.data.productColls[pc.ProductID] = append(q.data.productColls[pc.ProductID], pc)
	return nil
}

func (q *memQuerier) DeleteProductCollections(ctx context.Context, productID uuid.UUID) error {
	delete(q.data.productColls, productID)
	return nil
}

// =============================================================================
// Locations and inventory
// =============================================================================

func (q *memQuerier) GetLocationByName(ctx context.Context, name string) (domain.Location, error) {
	for _, l := range q.data.locations {
		if l.Name == name {
			return l, nil
		}
	}
	return domain.Location{}, domain.ErrLocationNotFound
}

func (q *memQuerier) CreateLocation(ctx context.Context, l domain.Location) (domain.Location, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = time.Now().UTC()
	q.data.locations[l.ID] = l
	return l, nil
}

func (q *memQuerier) GetInventoryLevel(ctx context.Context, variantID, locationID uuid.UUID) (domain.InventoryLevel, error) {
	lvl, ok := q.data.inventoryLevels[invKey{variantID, locationID}]
	if !ok {
		return domain.InventoryLevel{}, domain.ErrInventoryLevelNotFound
	}
	return lvl, nil
}

func (q *memQuerier) UpsertInventoryLevel(ctx context.Context, lvl domain.InventoryLevel) (domain.InventoryLevel, error) {
	lvl.UpdatedAt = time.Now().UTC()
	q.data.inventoryLevels[invKey{lvl.VariantID, lvl.LocationID}] = lvl
	return lvl, nil
}

func (q *memQuerier) ListInventoryLevels(ctx context.Context, variantID uuid.UUID) ([]domain.InventoryLevel, error) {
	var out []domain.InventoryLevel
	for k, lvl := range q.data.inventoryLevels {
		if k.variantID == variantID {
			out = append(out, lvl)
		}
	}
	return out, nil
}

func (q *memQuerier) DeleteInventoryLevelsForProduct(ctx context.Context, productID uuid.UUID) error {
	for _, v := range q.data.variants[productID] {
		for k := range q.data.inventoryLevels {
			if k.variantID == v.ID {
				delete(q.data.inventoryLevels, k)
			}
		}
	}
	return nil
}

// =============================================================================
// Discounts
// =============================================================================

func (q *memQuerier) GetDiscountByID(ctx context.Context, id uuid.UUID) (domain.Discount, error) {
	d, ok := q.data.discounts[id]
	if !ok {
		return domain.Discount{}, domain.ErrDiscountNotFound
	}
	return d, nil
}

func (q *memQuerier) GetDiscountByCode(ctx context.Context, code string) (domain.Discount, error) {
	for _, d := range q.data.discounts {
		if d.Code == code {
			return d, nil
		}
	}
	return domain.Discount{}, domain.ErrDiscountNotFound
}

func (q *memQuerier) CreateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	for _, existing := range q.data.discounts {
		if existing.Code == d.Code {
			return domain.Discount{}, domain.ErrDuplicateCode
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	q.data.discounts[d.ID] = d
	return d, nil
}

func (q *memQuerier) UpdateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	if _, ok := q.data.discounts[d.ID]; !ok {
		return domain.Discount{}, domain.ErrDiscountNotFound
	}
	for _, existing := range q.data.discounts {
		if existing.Code == d.Code && existing.ID != d.ID {
			return domain.Discount{}, domain.ErrDuplicateCode
		}
	}
	d.UpdatedAt = time.Now().UTC()
	q.data.discounts[d.ID] = d
	return d, nil
}

func (q *memQuerier) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	if _, ok := q.data.discounts[id]; !ok {
		return domain.ErrDiscountNotFound
	}
	delete(q.data.discounts, id)
	return nil
}

func (q *memQuerier) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	out := make([]domain.Discount, 0, len(q.data.discounts))
	for _, d := range q.data.discounts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// =============================================================================
// Orders
// =============================================================================

func (q *memQuerier) GetOrderByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	o, ok := q.data.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (q *memQuerier) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	q.data.orders[o.ID] = o
	return o, nil
}

func (q *memQuerier) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	o, ok := q.data.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	q.data.orders[id] = o
	return o, nil
}

func (q *memQuerier) ListOrders(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(q.data.orders))
	for _, o := range q.data.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// =============================================================================
// Top-level (non-transactional) Querier delegation
// =============================================================================

func (s *MemStore) GetProductByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	var out domain.Product
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductByID(ctx, id)
		return err
	})
	return out, err
}

func (s *MemStore) GetProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	var out domain.Product
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductByHandle(ctx, handle)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateProduct(ctx, p)
		return err
	})
	return out, err
}

func (s *MemStore) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.UpdateProduct(ctx, p)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProduct(ctx, id) })
}

func (s *MemStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.ListProducts(ctx)
		return err
	})
	return out, err
}

func (s *MemStore) GetProductOptions(ctx context.Context, productID uuid.UUID) ([]domain.ProductOption, error) {
	var out []domain.ProductOption
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductOptions(ctx, productID)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProductOption(ctx context.Context, o domain.ProductOption) (domain.ProductOption, error) {
	var out domain.ProductOption
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateProductOption(ctx, o)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteProductOptions(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProductOptions(ctx, productID) })
}

func (s *MemStore) GetProductVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error) {
	var out []domain.ProductVariant
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductVariants(ctx, productID)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProductVariant(ctx context.Context, v domain.ProductVariant) (domain.ProductVariant, error) {
	var out domain.ProductVariant
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateProductVariant(ctx, v)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteProductVariants(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProductVariants(ctx, productID) })
}

func (s *MemStore) GetProductMedia(ctx context.Context, productID uuid.UUID) ([]domain.ProductMedia, error) {
	var out []domain.ProductMedia
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductMedia(ctx, productID)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProductMedia(ctx context.Context, m domain.ProductMedia) (domain.ProductMedia, error) {
	var out domain.ProductMedia
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateProductMedia(ctx, m)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteProductMedia(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProductMedia(ctx, productID) })
}

func (s *MemStore) GetProductMetafields(ctx context.Context, productID uuid.UUID) ([]domain.ProductMetafield, error) {
	var out []domain.ProductMetafield
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductMetafields(ctx, productID)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProductMetafield(ctx context.Context, f domain.ProductMetafield) (domain.ProductMetafield, error) {
	var out domain.ProductMetafield
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateProductMetafield(ctx, f)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteProductMetafields(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProductMetafields(ctx, productID) })
}

func (s *MemStore) GetCollectionByID(ctx context.Context, id uuid.UUID) (domain.Collection, error) {
	var out domain.Collection
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetCollectionByID(ctx, id)
		return err
	})
	return out, err
}

func (s *MemStore) GetCollectionByHandle(ctx context.Context, handle string) (domain.Collection, error) {
	var out domain.Collection
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetCollectionByHandle(ctx, handle)
		return err
	})
	return out, err
}

func (s *MemStore) CreateCollection(ctx context.Context, c domain.Collection) (domain.Collection, error) {
	var out domain.Collection
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateCollection(ctx, c)
		return err
	})
	return out, err
}

func (s *MemStore) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	var out []domain.Collection
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.ListCollections(ctx)
		return err
	})
	return out, err
}

func (s *MemStore) GetProductCollections(ctx context.Context, productID uuid.UUID) ([]domain.ProductCollection, error) {
	var out []domain.ProductCollection
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetProductCollections(ctx, productID)
		return err
	})
	return out, err
}

func (s *MemStore) CreateProductCollection(ctx context.Context, pc domain.ProductCollection) error {
	return s.locked(func(q *memQuerier) error { return q.CreateProductCollection(ctx, pc) })
}

func (s *MemStore) DeleteProductCollections(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteProductCollections(ctx, productID) })
}

func (s *MemStore) GetLocationByName(ctx context.Context, name string) (domain.Location, error) {
	var out domain.Location
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetLocationByName(ctx, name)
		return err
	})
	return out, err
}

func (s *MemStore) CreateLocation(ctx context.Context, l domain.Location) (domain.Location, error) {
	var out domain.Location
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateLocation(ctx, l)
		return err
	})
	return out, err
}

func (s *MemStore) GetInventoryLevel(ctx context.Context, variantID, locationID uuid.UUID) (domain.InventoryLevel, error) {
	var out domain.InventoryLevel
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetInventoryLevel(ctx, variantID, locationID)
		return err
	})
	return out, err
}

func (s *MemStore) UpsertInventoryLevel(ctx context.Context, lvl domain.InventoryLevel) (domain.InventoryLevel, error) {
	var out domain.InventoryLevel
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.UpsertInventoryLevel(ctx, lvl)
		return err
	})
	return out, err
}

func (s *MemStore) ListInventoryLevels(ctx context.Context, variantID uuid.UUID) ([]domain.InventoryLevel, error) {
	var out []domain.InventoryLevel
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.ListInventoryLevels(ctx, variantID)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteInventoryLevelsForProduct(ctx context.Context, productID uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteInventoryLevelsForProduct(ctx, productID) })
}

func (s *MemStore) GetDiscountByID(ctx context.Context, id uuid.UUID) (domain.Discount, error) {
	var out domain.Discount
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetDiscountByID(ctx, id)
		return err
	})
	return out, err
}

func (s *MemStore) GetDiscountByCode(ctx context.Context, code string) (domain.Discount, error) {
	var out domain.Discount
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetDiscountByCode(ctx, code)
		return err
	})
	return out, err
}

func (s *MemStore) CreateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	var out domain.Discount
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateDiscount(ctx, d)
		return err
	})
	return out, err
}

func (s *MemStore) UpdateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	var out domain.Discount
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.UpdateDiscount(ctx, d)
		return err
	})
	return out, err
}

func (s *MemStore) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	return s.locked(func(q *memQuerier) error { return q.DeleteDiscount(ctx, id) })
}

func (s *MemStore) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	var out []domain.Discount
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.ListDiscounts(ctx)
		return err
	})
	return out, err
}

func (s *MemStore) GetOrderByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var out domain.Order
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.GetOrderByID(ctx, id)
		return err
	})
	return out, err
}

func (s *MemStore) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	var out domain.Order
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.CreateOrder(ctx, o)
		return err
	})
	return out, err
}

func (s *MemStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	var out domain.Order
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.UpdateOrderStatus(ctx, id, status)
		return err
	})
	return out, err
}

func (s *MemStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := s.locked(func(q *memQuerier) error {
		var err error
		out, err = q.ListOrders(ctx)
		return err
	})
	return out, err
}

// Compile-time check that both views satisfy the contracts.
var (
	_ Store   = (*MemStore)(nil)
	_ Querier = (*memQuerier)(nil)
)
