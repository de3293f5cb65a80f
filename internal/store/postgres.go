package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx, so every query method
// works inside and outside a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore is the PostgreSQL-backed Store.
type PGStore struct {
	pgQuerier
	pool *pgxpool.Pool
}

type pgQuerier struct {
	db dbtx
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pgQuerier: pgQuerier{db: pool}, pool: pool}
}

// WithTx runs fn inside one transaction. Any error rolls everything back.
func (s *PGStore) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Internal(err, "store.WithTx", "beginning transaction")
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgQuerier{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Internal(err, "store.WithTx", "committing transaction")
	}
	return nil
}

// Money and weight columns are NUMERIC; they travel as text so decimals
// never pass through float64.
func scanDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, fmt.Errorf("parsing numeric %q: %w", *raw, err)
	}
	return &d, nil
}

func decimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// =============================================================================
// Products
// =============================================================================

const productColumns = `id, handle, title, description, status, vendor, category, tags, published_at, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Handle, &p.Title, &p.Description, &p.Status,
		&p.Vendor, &p.Category, &p.Tags, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (q *pgQuerier) GetProductByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(err, domain.ErrProductNotFound)
	}
	return p, nil
}

func (q *pgQuerier) GetProductByHandle(ctx context.Context, handle string) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE handle = $1`, handle)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(err, domain.ErrProductNotFound)
	}
	return p, nil
}

func (q *pgQuerier) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO products (handle, title, description, status, vendor, category, tags, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		p.Handle, p.Title, p.Description, p.Status, p.Vendor, p.Category, p.Tags, p.PublishedAt)
	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(err, domain.ErrProductNotFound)
	}
	return created, nil
}

func (q *pgQuerier) UpdateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE products
		SET handle = $2, title = $3, description = $4, status = $5, vendor = $6,
		    category = $7, tags = $8, published_at = $9, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Handle, p.Title, p.Description, p.Status, p.Vendor, p.Category, p.Tags, p.PublishedAt)
	updated, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapError(err, domain.ErrProductNotFound)
	}
	return updated, nil
}

func (q *pgQuerier) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrProductNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (q *pgQuerier) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := q.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY handle`)
	if err != nil {
		return nil, mapError(err, domain.ErrProductNotFound)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// Options
// =============================================================================

func (q *pgQuerier) GetProductOptions(ctx context.Context, productID uuid.UUID) ([]domain.ProductOption, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, product_id, name, "values", position
		FROM product_options WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, mapError(err, domain.ErrProductNotFound)
	}
	defer rows.Close()

	var out []domain.ProductOption
	for rows.Next() {
		var o domain.ProductOption
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Name, &o.Values, &o.Position); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (q *pgQuerier) CreateProductOption(ctx context.Context, o domain.ProductOption) (domain.ProductOption, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO product_options (product_id, name, "values", position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, name, "values", position`,
		o.ProductID, o.Name, o.Values, o.Position)
	var created domain.ProductOption
	err := row.Scan(&created.ID, &created.ProductID, &created.Name, &created.Values, &created.Position)
	if err != nil {
		return domain.ProductOption{}, mapError(err, domain.ErrProductNotFound)
	}
	return created, nil
}

func (q *pgQuerier) DeleteProductOptions(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_options WHERE product_id = $1`, productID)
	return mapError(err, domain.ErrProductNotFound)
}

// =============================================================================
// Variants
// =============================================================================

const variantColumns = `id, product_id, title, sku, price::text, compare_at_price::text, cost::text, weight::text, option_values, image_url, track_inventory, position`

func scanVariant(row pgx.Row) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	var price, compareAt, cost, weight *string
	err := row.Scan(&v.ID, &v.ProductID, &v.Title, &v.SKU, &price, &compareAt,
		&cost, &weight, &v.OptionValues, &v.ImageURL, &v.TrackInventory, &v.Position)
	if err != nil {
		return domain.ProductVariant{}, err
	}
	if v.Price, err = scanDecimal(price); err != nil {
		return domain.ProductVariant{}, err
	}
	if v.CompareAtPrice, err = scanDecimal(compareAt); err != nil {
		return domain.ProductVariant{}, err
	}
	if v.Cost, err = scanDecimal(cost); err != nil {
		return domain.ProductVariant{}, err
	}
	if v.Weight, err = scanDecimal(weight); err != nil {
		return domain.ProductVariant{}, err
	}
	return v, nil
}

func (q *pgQuerier) GetProductVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+variantColumns+` FROM product_variants
		WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, mapError(err, domain.ErrVariantNotFound)
	}
	defer rows.Close()

	var out []domain.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (q *pgQuerier) CreateProductVariant(ctx context.Context, v domain.ProductVariant) (domain.ProductVariant, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, title, sku, price, compare_at_price, cost, weight, option_values, image_url, track_inventory, position)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7::numeric, $8, $9, $10, $11)
		RETURNING `+variantColumns,
		v.ProductID, v.Title, v.SKU, decimalArg(v.Price), decimalArg(v.CompareAtPrice),
		decimalArg(v.Cost), decimalArg(v.Weight), v.OptionValues, v.ImageURL, v.TrackInventory, v.Position)
	created, err := scanVariant(row)
	if err != nil {
		return domain.ProductVariant{}, mapError(err, domain.ErrVariantNotFound)
	}
	return created, nil
}

func (q *pgQuerier) DeleteProductVariants(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, productID)
	return mapError(err, domain.ErrVariantNotFound)
}

// =============================================================================
// Media
// =============================================================================

func (q *pgQuerier) GetProductMedia(ctx context.Context, productID uuid.UUID) ([]domain.ProductMedia, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, product_id, url, type, alt, position
		FROM product_media WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, mapError(err, domain.ErrProductNotFound)
	}
	defer rows.Close()

	var out []domain.ProductMedia
	for rows.Next() {
		var m domain.ProductMedia
		if err := rows.Scan(&m.ID, &m.ProductID, &m.URL, &m.Type, &m.Alt, &m.Position); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (q *pgQuerier) CreateProductMedia(ctx context.Context, m domain.ProductMedia) (domain.ProductMedia, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO product_media (product_id, url, type, alt, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, url, type, alt, position`,
		m.ProductID, m.URL, m.Type, m.Alt, m.Position)
	var created domain.ProductMedia
	err := row.Scan(&created.ID, &created.ProductID, &created.URL, &created.Type, &created.Alt, &created.Position)
	if err != nil {
		return domain.ProductMedia{}, mapError(err, domain.ErrProductNotFound)
	}
	return created, nil
}

func (q *pgQuerier) DeleteProductMedia(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_media WHERE product_id = $1`, productID)
	return mapError(err, domain.ErrProductNotFound)
}

// =============================================================================
// Metafields
// =============================================================================

func (q *pgQuerier) GetProductMetafields(ctx context.Context, productID uuid.UUID) ([]domain.ProductMetafield, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, owner_id, namespace, key, type, value, "set"
		FROM product_metafields WHERE owner_id = $1 ORDER BY namespace, key`, productID)
	if err != nil {
		return nil, mapError(err, domain.ErrProductNotFound)
	}
	defer rows.Close()

	var out []domain.ProductMetafield
	for rows.Next() {
		var f domain.ProductMetafield
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Namespace, &f.Key, &f.Type, &f.Value, &f.Set); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (q *pgQuerier) CreateProductMetafield(ctx context.Context, f domain.ProductMetafield) (domain.ProductMetafield, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO product_metafields (owner_id, namespace, key, type, value, "set")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, namespace, key, type, value, "set"`,
		f.OwnerID, f.Namespace, f.Key, f.Type, f.Value, f.Set)
	var created domain.ProductMetafield
	err := row.Scan(&created.ID, &created.OwnerID, &created.Namespace, &created.Key, &created.Type, &created.Value, &created.Set)
	if err != nil {
		return domain.ProductMetafield{}, mapError(err, domain.ErrProductNotFound)
	}
	return created, nil
}

func (q *pgQuerier) DeleteProductMetafields(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_metafields WHERE owner_id = $1`, productID)
	return mapError(err, domain.ErrProductNotFound)
}

// =============================================================================
// Collections
// =============================================================================

func (q *pgQuerier) GetCollectionByID(ctx context.Context, id uuid.UUID) (domain.Collection, error) {
	var c domain.Collection
	err := q.db.QueryRow(ctx, `
		SELECT id, handle, title, parent_id, created_at FROM collections WHERE id = $1`, id).
		Scan(&c.ID, &c.Handle, &c.Title, &c.ParentID, &c.CreatedAt)
	if err != nil {
		return domain.Collection{}, mapError(err, domain.ErrCollectionNotFound)
	}
	return c, nil
}

func (q *pgQuerier) GetCollectionByHandle(ctx context.Context, handle string) (domain.Collection, error) {
	var c domain.Collection
	err := q.db.QueryRow(ctx, `
		SELECT id, handle, title, parent_id, created_at FROM collections WHERE handle = $1`, handle).
		Scan(&c.ID, &c.Handle, &c.Title, &c.ParentID, &c.CreatedAt)
	if err != nil {
		return domain.Collection{}, mapError(err, domain.ErrCollectionNotFound)
	}
	return c, nil
}

func (q *pgQuerier) CreateCollection(ctx context.Context, c domain.Collection) (domain.Collection, error) {
	var created domain.Collection
	err := q.db.QueryRow(ctx, `
		INSERT INTO collections (handle, title, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, handle, title, parent_id, created_at`,
		c.Handle, c.Title, c.ParentID).
		Scan(&created.ID, &created.Handle, &created.Title, &created.ParentID, &created.CreatedAt)
	if err != nil {
		return domain.Collection{}, mapError(err, domain.ErrCollectionNotFound)
	}
	return created, nil
}

func (q *pgQuerier) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	rows, err := q.db.Query(ctx, `SELECT id, handle, title, parent_id, created_at FROM collections ORDER BY handle`)
	if err != nil {
		return nil, mapError(err, domain.ErrCollectionNotFound)
	}
	defer rows.Close()

	var out []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Handle, &c.Title, &c.ParentID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (q *pgQuerier) GetProductCollections(ctx context.Context, productID uuid.UUID) ([]domain.ProductCollection, error) {
	rows, err := q.db.Query(ctx, `
		SELECT product_id, collection_id, position
		FROM product_collections WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, mapError(err, domain.ErrProductNotFound)
	}
	defer rows.Close()

	var out []domain.ProductCollection
	for rows.Next() {
		var pc domain.ProductCollection
		if err := rows.Scan(&pc.ProductID, &pc.CollectionID, &pc.Position); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (q *pgQuerier) CreateProductCollection(ctx context.Context, pc domain.ProductCollection) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO product_collections (product_id, collection_id, position)
		VALUES ($1, $2, $3)`,
		pc.ProductID, pc.CollectionID, pc.Position)
	return mapError(err, domain.ErrCollectionNotFound)
}

func (q *pgQuerier) DeleteProductCollections(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_collections WHERE product_id = $1`, productID)
	return mapError(err, domain.ErrProductNotFound)
}

// =============================================================================
// Locations and inventory
// =============================================================================

func (q *pgQuerier) GetLocationByName(ctx context.Context, name string) (domain.Location, error) {
	var l domain.Location
	err := q.db.QueryRow(ctx, `SELECT id, name, created_at FROM locations WHERE name = $1`, name).
		Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		return domain.Location{}, mapError(err, domain.ErrLocationNotFound)
	}
	return l, nil
}

func (q *pgQuerier) CreateLocation(ctx context.Context, l domain.Location) (domain.Location, error) {
	var created domain.Location
	err := q.db.QueryRow(ctx, `
		INSERT INTO locations (name) VALUES ($1)
		RETURNING id, name, created_at`, l.Name).
		Scan(&created.ID, &created.Name, &created.CreatedAt)
	if err != nil {
		return domain.Location{}, mapError(err, domain.ErrLocationNotFound)
	}
	return created, nil
}

const levelColumns = `variant_id, location_id, available, on_hand, committed, unavailable, updated_at`

func scanLevel(row pgx.Row) (domain.InventoryLevel, error) {
	var lvl domain.InventoryLevel
	err := row.Scan(&lvl.VariantID, &lvl.LocationID, &lvl.Available, &lvl.OnHand,
		&lvl.Committed, &lvl.Unavailable, &lvl.UpdatedAt)
	return lvl, err
}

func (q *pgQuerier) GetInventoryLevel(ctx context.Context, variantID, locationID uuid.UUID) (domain.InventoryLevel, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+levelColumns+` FROM inventory_levels
		WHERE variant_id = $1 AND location_id = $2`, variantID, locationID)
	lvl, err := scanLevel(row)
	if err != nil {
		return domain.InventoryLevel{}, mapError(err, domain.ErrInventoryLevelNotFound)
	}
	return lvl, nil
}

func (q *pgQuerier) UpsertInventoryLevel(ctx context.Context, lvl domain.InventoryLevel) (domain.InventoryLevel, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO inventory_levels (variant_id, location_id, available, on_hand, committed, unavailable)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (variant_id, location_id) DO UPDATE
		SET available = EXCLUDED.available, on_hand = EXCLUDED.on_hand,
		    committed = EXCLUDED.committed, unavailable = EXCLUDED.unavailable,
		    updated_at = now()
		RETURNING `+levelColumns,
		lvl.VariantID, lvl.LocationID, lvl.Available, lvl.OnHand, lvl.Committed, lvl.Unavailable)
	upserted, err := scanLevel(row)
	if err != nil {
		return domain.InventoryLevel{}, mapError(err, domain.ErrInventoryLevelNotFound)
	}
	return upserted, nil
}

func (q *pgQuerier) ListInventoryLevels(ctx context.Context, variantID uuid.UUID) ([]domain.InventoryLevel, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+levelColumns+` FROM inventory_levels WHERE variant_id = $1`, variantID)
	if err != nil {
		return nil, mapError(err, domain.ErrInventoryLevelNotFound)
	}
	defer rows.Close()

	var out []domain.InventoryLevel
	for rows.Next() {
		lvl, err := scanLevel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return out, rows.Err()
}

func (q *pgQuerier) DeleteInventoryLevelsForProduct(ctx context.Context, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `
		DELETE FROM inventory_levels
		WHERE variant_id IN (SELECT id FROM product_variants WHERE product_id = $1)`, productID)
	return mapError(err, domain.ErrProductNotFound)
}

// =============================================================================
// Discounts
// =============================================================================

const discountColumns = `id, code, type, value::text, min_subtotal::text, max_discount::text, starts_at, ends_at, is_active, created_at, updated_at`

func scanDiscount(row pgx.Row) (domain.Discount, error) {
	var d domain.Discount
	var value string
	var minSubtotal, maxDiscount *string
	err := row.Scan(&d.ID, &d.Code, &d.Type, &value, &minSubtotal, &maxDiscount,
		&d.StartsAt, &d.EndsAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Discount{}, err
	}
	if d.Value, err = decimal.NewFromString(value); err != nil {
		return domain.Discount{}, err
	}
	if d.MinSubtotal, err = scanDecimal(minSubtotal); err != nil {
		return domain.Discount{}, err
	}
	if d.MaxDiscount, err = scanDecimal(maxDiscount); err != nil {
		return domain.Discount{}, err
	}
	return d, nil
}

func (q *pgQuerier) GetDiscountByID(ctx context.Context, id uuid.UUID) (domain.Discount, error) {
	row := q.db.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id = $1`, id)
	d, err := scanDiscount(row)
	if err != nil {
		return domain.Discount{}, mapError(err, domain.ErrDiscountNotFound)
	}
	return d, nil
}

func (q *pgQuerier) GetDiscountByCode(ctx context.Context, code string) (domain.Discount, error) {
	row := q.db.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE code = $1`, code)
	d, err := scanDiscount(row)
	if err != nil {
		return domain.Discount{}, mapError(err, domain.ErrDiscountNotFound)
	}
	return d, nil
}

func (q *pgQuerier) CreateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO discounts (code, type, value, min_subtotal, max_discount, starts_at, ends_at, is_active)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric, $6, $7, $8)
		RETURNING `+discountColumns,
		d.Code, d.Type, d.Value.String(), decimalArg(d.MinSubtotal), decimalArg(d.MaxDiscount),
		d.StartsAt, d.EndsAt, d.IsActive)
	created, err := scanDiscount(row)
	if err != nil {
		return domain.Discount{}, mapError(err, domain.ErrDiscountNotFound)
	}
	return created, nil
}

func (q *pgQuerier) UpdateDiscount(ctx context.Context, d domain.Discount) (domain.Discount, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE discounts
		SET code = $2, type = $3, value = $4::numeric, min_subtotal = $5::numeric,
		    max_discount = $6::numeric, starts_at = $7, ends_at = $8, is_active = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+discountColumns,
		d.ID, d.Code, d.Type, d.Value.String(), decimalArg(d.MinSubtotal), decimalArg(d.MaxDiscount),
		d.StartsAt, d.EndsAt, d.IsActive)
	updated, err := scanDiscount(row)
	if err != nil {
		return domain.Discount{}, mapError(err, domain.ErrDiscountNotFound)
	}
	return updated, nil
}

func (q *pgQuerier) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrDiscountNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDiscountNotFound
	}
	return nil
}

func (q *pgQuerier) ListDiscounts(ctx context.Context) ([]domain.Discount, error) {
	rows, err := q.db.Query(ctx, `SELECT `+discountColumns+` FROM discounts ORDER BY code`)
	if err != nil {
		return nil, mapError(err, domain.ErrDiscountNotFound)
	}
	defer rows.Close()

	var out []domain.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// =============================================================================
// Orders
// =============================================================================

const orderColumns = `id, number, email, items, subtotal::text, shipping_fee::text, total::text, currency, discount_code, discount_amount::text, status, created_at, updated_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var subtotal, shippingFee, total string
	var discountAmount *string
	err := row.Scan(&o.ID, &o.Number, &o.Email, &o.Items, &subtotal, &shippingFee,
		&total, &o.Totals.Currency, &o.DiscountCode, &discountAmount, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Totals.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return domain.Order{}, err
	}
	if o.Totals.ShippingFee, err = decimal.NewFromString(shippingFee); err != nil {
		return domain.Order{}, err
	}
	if o.Totals.Total, err = decimal.NewFromString(total); err != nil {
		return domain.Order{}, err
	}
	if o.DiscountAmount, err = scanDecimal(discountAmount); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (q *pgQuerier) GetOrderByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, mapError(err, domain.ErrOrderNotFound)
	}
	return o, nil
}

func (q *pgQuerier) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO orders (number, email, items, subtotal, shipping_fee, total, currency, discount_code, discount_amount, status)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7, $8, $9::numeric, $10)
		RETURNING `+orderColumns,
		o.Number, o.Email, o.Items, o.Totals.Subtotal.String(), o.Totals.ShippingFee.String(),
		o.Totals.Total.String(), o.Totals.Currency, o.DiscountCode, decimalArg(o.DiscountAmount), o.Status)
	created, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, mapError(err, domain.ErrOrderNotFound)
	}
	return created, nil
}

func (q *pgQuerier) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	row := q.db.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, status)
	updated, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, mapError(err, domain.ErrOrderNotFound)
	}
	return updated, nil
}

func (q *pgQuerier) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := q.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, mapError(err, domain.ErrOrderNotFound)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ Store = (*PGStore)(nil)
