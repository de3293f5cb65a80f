package bulk

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hollis/threadbare/internal/csv"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
	"github.com/shopspring/decimal"
)

// Exporter flattens the catalog into the CSV shape the importer accepts:
// one row per (product, variant) pair, one variant-less row for products
// without variants, and collections and images joined with "|" on the
// product's first row.
type Exporter struct {
	store  store.Store
	logger *slog.Logger
}

func NewExporter(st store.Store, logger *slog.Logger) *Exporter {
	return &Exporter{store: st, logger: logger}
}

func exportHeader() []string {
	header := []string{
		colHandle, colTitle, colDescription, colVendor, colCategory,
		colTags, colStatus, colPublishedAt, colCollections, colImages,
	}
	for i := 1; i <= maxOptionColumns; i++ {
		header = append(header, optionNameCol(i), optionValueCol(i))
	}
	return append(header,
		colVariantTitle, colVariantSKU, colVariantPrice, colVariantCompare,
		colVariantCost, colVariantWeight, colVariantStock,
	)
}

// ExportCSV renders every product. The output round-trips through ImportCSV
// to the same option schema and variant set.
func (e *Exporter) ExportCSV(ctx context.Context) (string, error) {
	products, err := e.store.ListProducts(ctx)
	if err != nil {
		return "", err
	}

	collectionHandles, err := e.collectionHandleIndex(ctx)
	if err != nil {
		return "", err
	}

	rows := [][]string{exportHeader()}
	for _, p := range products {
		productRows, err := e.productRows(ctx, p, collectionHandles)
		if err != nil {
			return "", err
		}
		rows = append(rows, productRows...)
	}

	e.logger.InfoContext(ctx, "csv export finished",
		slog.Int("products", len(products)),
		slog.Int("rows", len(rows)-1),
	)
	return csv.Write(rows), nil
}

func (e *Exporter) collectionHandleIndex(ctx context.Context) (map[uuid.UUID]string, error) {
	collections, err := e.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]string, len(collections))
	for _, c := range collections {
		index[c.ID] = c.Handle
	}
	return index, nil
}

func (e *Exporter) productRows(ctx context.Context, p domain.Product, collectionHandles map[uuid.UUID]string) ([][]string, error) {
	options, err := e.store.GetProductOptions(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	variants, err := e.store.GetProductVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	media, err := e.store.GetProductMedia(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	memberships, err := e.store.GetProductCollections(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	handles := make([]string, 0, len(memberships))
	for _, m := range memberships {
		if h, ok := collectionHandles[m.CollectionID]; ok {
			handles = append(handles, h)
		}
	}
	images := make([]string, 0, len(media))
	for _, m := range media {
		if m.Type == domain.MediaTypeImage {
			images = append(images, m.URL)
		}
	}

	if len(options) > maxOptionColumns {
		options = options[:maxOptionColumns]
	}

	if len(variants) == 0 {
		// Variant cells stay blank so re-import contributes no variant.
		row := e.baseRow(p, handles, images, true)
		row = appendOptionCells(row, options, nil)
		row = append(row, "", "", "", "", "", "", "")
		return [][]string{row}, nil
	}

	rows := make([][]string, 0, len(variants))
	for i, v := range variants {
		row := e.baseRow(p, handles, images, i == 0)
		row = appendOptionCells(row, options, v.OptionValues)
		stock, err := e.variantStock(ctx, v)
		if err != nil {
			return nil, err
		}
		rows = append(rows, append(row,
			v.Title,
			strOrEmpty(v.SKU),
			decOrEmpty(v.Price),
			decOrEmpty(v.CompareAtPrice),
			decOrEmpty(v.Cost),
			decOrEmpty(v.Weight),
			stock,
		))
	}
	return rows, nil
}

// baseRow renders the product scalar cells. Collections and images appear
// only on the first row of a product; continuation rows leave them blank.
func (e *Exporter) baseRow(p domain.Product, handles, images []string, first bool) []string {
	if !first {
		return []string{p.Handle, "", "", "", "", "", "", "", "", ""}
	}
	published := ""
	if p.PublishedAt != nil {
		published = p.PublishedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		p.Handle,
		p.Title,
		p.Description,
		p.Vendor,
		p.Category,
		strings.Join(p.Tags, ","),
		string(p.Status),
		published,
		strings.Join(handles, "|"),
		strings.Join(images, "|"),
	}
}

func appendOptionCells(row []string, options []domain.ProductOption, values map[string]string) []string {
	for i := 0; i < maxOptionColumns; i++ {
		if i < len(options) {
			row = append(row, options[i].Name, values[options[i].Name])
		} else {
			row = append(row, "", "")
		}
	}
	return row
}

// variantStock sums on-hand stock across locations, blank when the variant
// is untracked or has no levels.
func (e *Exporter) variantStock(ctx context.Context, v domain.ProductVariant) (string, error) {
	if !v.TrackInventory {
		return "", nil
	}
	levels, err := e.store.ListInventoryLevels(ctx, v.ID)
	if err != nil {
		return "", err
	}
	if len(levels) == 0 {
		return "", nil
	}
	var total int32
	for _, lvl := range levels {
		total += lvl.OnHand
	}
	return strconv.Itoa(int(total)), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
