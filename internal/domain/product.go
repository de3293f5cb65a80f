package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRODUCT DOMAIN TYPES
// =============================================================================

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// MediaType identifies the kind of media attached to a product.
type MediaType string

const (
	MediaTypeImage         MediaType = "IMAGE"
	MediaTypeVideo         MediaType = "VIDEO"
	MediaTypeModel3D       MediaType = "MODEL_3D"
	MediaTypeExternalVideo MediaType = "EXTERNAL_VIDEO"
)

// MetafieldSet scopes a product-level metafield.
type MetafieldSet string

const (
	MetafieldSetProduct  MetafieldSet = "PRODUCT"
	MetafieldSetCategory MetafieldSet = "CATEGORY"
)

// Product is the catalog aggregate root, identified by a unique URL-safe
// handle or by surrogate id.
type Product struct {
	ID          uuid.UUID
	Handle      string
	Title       string
	Description string
	Status      ProductStatus
	Vendor      string
	Category    string
	Tags        []string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductOption is a named axis of variation (e.g. "Size") with an ordered
// set of allowed values. Option names are unique within a product.
type ProductOption struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Values    []string
	Position  int32
}

// ProductVariant is one purchasable combination of option values.
// Money and weight fields are nullable decimals.
type ProductVariant struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	Title          string
	SKU            *string
	Price          *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Cost           *decimal.Decimal
	Weight         *decimal.Decimal
	OptionValues   map[string]string
	ImageURL       *string
	TrackInventory bool
	Position       int32
}

// ProductMedia is an image, video or 3D model attached to a product.
type ProductMedia struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	URL       string
	Type      MediaType
	Alt       string
	Position  int32
}

// ProductMetafield is a typed (namespace, key) value owned by a product
// or a variant.
type ProductMetafield struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Namespace string
	Key       string
	Type      string
	Value     string
	Set       MetafieldSet
}

// Collection groups products, identified by handle. ParentID forms an
// optional tree; cycles are not enforced against.
type Collection struct {
	ID        uuid.UUID
	Handle    string
	Title     string
	ParentID  *uuid.UUID
	CreatedAt time.Time
}

// ProductCollection joins a product to a collection with an ordering
// position within the collection.
type ProductCollection struct {
	ProductID    uuid.UUID
	CollectionID uuid.UUID
	Position     int32
}

// ProductDetail aggregates a product with all owned child entities.
// Returned by the synchronizer after a successful reconcile.
type ProductDetail struct {
	Product     Product
	Options     []ProductOption
	Variants    []ProductVariant
	Media       []ProductMedia
	Metafields  []ProductMetafield
	Collections []ProductCollection
}

// =============================================================================
// DESIRED-STATE PAYLOAD
// =============================================================================

// ProductPayload is the desired product state handed to the synchronizer.
// Scalar pointer fields follow partial-update semantics: nil means leave
// untouched. Child slices follow replace-set semantics: nil means absent
// (leave children alone), non-nil (including empty) means replace wholesale.
type ProductPayload struct {
	Title       *string        `json:"title" validate:"omitempty,min=1"`
	Handle      *string        `json:"handle"`
	Description *string        `json:"description"`
	Status      *ProductStatus `json:"status" validate:"omitempty,oneof=ACTIVE DRAFT ARCHIVED"`
	Vendor      *string        `json:"vendor"`
	Category    *string        `json:"category"`
	Tags        []string       `json:"tags"`
	PublishedAt *time.Time     `json:"publishedAt"`

	Options    []OptionInput    `json:"options" validate:"omitempty,dive"`
	Media      []MediaInput     `json:"media" validate:"omitempty,dive"`
	Variants   []VariantInput   `json:"variants" validate:"omitempty,dive"`
	Metafields []MetafieldInput `json:"metafields" validate:"omitempty,dive"`

	CollectionIDs     []uuid.UUID `json:"collections"`
	CollectionHandles []string    `json:"collectionHandles"`
}

// HasCollections reports whether the payload carries a collection
// replacement (ids, handles, or both).
func (p *ProductPayload) HasCollections() bool {
	return p.CollectionIDs != nil || p.CollectionHandles != nil
}

// OptionInput declares one option axis in submission order.
type OptionInput struct {
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values" validate:"required,min=1,dive,required"`
}

// MediaInput declares one media item in submission order.
type MediaInput struct {
	URL  string    `json:"url" validate:"required"`
	Type MediaType `json:"type" validate:"omitempty,oneof=IMAGE VIDEO MODEL_3D EXTERNAL_VIDEO"`
	Alt  string    `json:"alt"`
}

// VariantInput declares one variant in submission order. Inventory, when
// given and TrackInventory is not explicitly false, seeds an inventory
// level at the named location ("Default" when unset).
type VariantInput struct {
	Title          *string           `json:"title"`
	SKU            *string           `json:"sku"`
	Price          *decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal  `json:"compareAtPrice"`
	Cost           *decimal.Decimal  `json:"cost"`
	Weight         *decimal.Decimal  `json:"weight"`
	OptionValues   map[string]string `json:"optionValues"`
	ImageURL       *string           `json:"imageUrl"`
	TrackInventory *bool             `json:"trackInventory"`
	Inventory      *int32            `json:"inventory"`
	LocationName   *string           `json:"locationName"`
}

// MetafieldInput declares one metafield in submission order.
type MetafieldInput struct {
	Namespace string       `json:"namespace" validate:"required"`
	Key       string       `json:"key" validate:"required"`
	Type      string       `json:"type"`
	Value     string       `json:"value"`
	Set       MetafieldSet `json:"set" validate:"omitempty,oneof=PRODUCT CATEGORY"`
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound    = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCollectionNotFound = &Error{Code: ENOTFOUND, Message: "Collection not found"}
	ErrVariantNotFound    = &Error{Code: ENOTFOUND, Message: "Variant not found"}

	ErrDuplicateHandle = &Error{Code: ECONFLICT, Message: "Product handle already exists"}
	ErrDuplicateSKU    = &Error{Code: ECONFLICT, Message: "Variant SKU already exists"}
)
