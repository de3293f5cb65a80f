// Package store defines the persistence contract for the catalog, discount,
// inventory and order entities, plus a PostgreSQL implementation and an
// in-memory implementation used by tests.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
)

// Querier is the set of entity operations the services drive. Implementations
// return the domain sentinel errors (domain.ErrProductNotFound,
// domain.ErrDuplicateSKU, ...) for not-found and unique-constraint outcomes,
// so callers never inspect driver errors.
type Querier interface {
	// Products
	GetProductByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	GetProductByHandle(ctx context.Context, handle string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// Options
	GetProductOptions(ctx context.Context, productID uuid.UUID) ([]domain.ProductOption, error)
	CreateProductOption(ctx context.Context, o domain.ProductOption) (domain.ProductOption, error)
	DeleteProductOptions(ctx context.Context, productID uuid.UUID) error

	// Variants
	GetProductVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error)
	CreateProductVariant(ctx context.Context, v domain.ProductVariant) (domain.ProductVariant, error)
	DeleteProductVariants(ctx context.Context, productID uuid.UUID) error

	// Media
	GetProductMedia(ctx context.Context, productID uuid.UUID) ([]domain.ProductMedia, error)
	CreateProductMedia(ctx context.Context, m domain.ProductMedia) (domain.ProductMedia, error)
	DeleteProductMedia(ctx context.Context, productID uuid.UUID) error

	// Metafields
	GetProductMetafields(ctx context.Context, productID uuid.UUID) ([]domain.ProductMetafield, error)
	CreateProductMetafield(ctx context.Context, f domain.ProductMetafield) (domain.ProductMetafield, error)
	DeleteProductMetafields(ctx context.Context, productID uuid.UUID) error

	// Collections
	GetCollectionByID(ctx context.Context, id uuid.UUID) (domain.Collection, error)
	GetCollectionByHandle(ctx context.Context, handle string) (domain.Collection, error)
	CreateCollection(ctx context.Context, c domain.Collection) (domain.Collection, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	GetProductCollections(ctx context.Context, productID uuid.UUID) ([]domain.ProductCollection, error)
	CreateProductCollection(ctx context.Context, pc domain.ProductCollection) error
	DeleteProductCollections(ctx context.Context, productID uuid.UUID) error

	// Locations and inventory
	GetLocationByName(ctx context.Context, name string) (domain.Location, error)
	CreateLocation(ctx context.Context, l domain.Location) (domain.Location, error)
	GetInventoryLevel(ctx context.Context, variantID, locationID uuid.UUID) (domain.InventoryLevel, error)
	UpsertInventoryLevel(ctx context.Context, lvl domain.InventoryLevel) (domain.InventoryLevel, error)
	ListInventoryLevels(ctx context.Context, variantID uuid.UUID) ([]domain.InventoryLevel, error)
	DeleteInventoryLevelsForProduct(ctx context.Context, productID uuid.UUID) error

	// Discounts
	GetDiscountByID(ctx context.Context, id uuid.UUID) (domain.Discount, error)
	GetDiscountByCode(ctx context.Context, code string) (domain.Discount, error)
	CreateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error)
	UpdateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error)
	DeleteDiscount(ctx context.Context, id uuid.UUID) error
	ListDiscounts(ctx context.Context) ([]domain.Discount, error)

	// Orders
	GetOrderByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

// Store adds transactional execution to Querier. WithTx runs fn against a
// transaction-bound Querier; any error (or panic) rolls the whole unit back.
type Store interface {
	Querier

	WithTx(ctx context.Context, fn func(q Querier) error) error
}
