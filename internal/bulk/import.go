// Package bulk drives the catalog synchronizer per product extracted from a
// CSV document or a JSON batch. Products are synchronized independently:
// one bad product lands in the failed bucket without aborting the rest.
package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/csv"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
	"github.com/shopspring/decimal"
)

// CSV column names. One row per variant; extra rows for the same handle may
// carry only images.
const (
	colHandle         = "Handle"
	colTitle          = "Title"
	colDescription    = "Description"
	colVendor         = "Vendor"
	colCategory       = "Category"
	colTags           = "Tags"
	colStatus         = "Status"
	colPublishedAt    = "Published At"
	colCollections    = "Collections"
	colImages         = "Images"
	colVariantTitle   = "Variant Title"
	colVariantSKU     = "Variant SKU"
	colVariantPrice   = "Variant Price"
	colVariantCompare = "Variant Compare At Price"
	colVariantCost    = "Variant Cost"
	colVariantWeight  = "Variant Weight"
	colVariantStock   = "Variant Inventory"
	colVariantLoc     = "Variant Location"
	colVariantImage   = "Variant Image"
)

func optionNameCol(i int) string  { return fmt.Sprintf("Option%d Name", i) }
func optionValueCol(i int) string { return fmt.Sprintf("Option%d Value", i) }

const maxOptionColumns = 3

// Result records the outcome for one product in a batch.
type Result struct {
	Handle  string `json:"handle"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Result statuses.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusFailed  = "failed"
)

// Summary accumulates per-product outcomes across a batch.
type Summary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

func (s *Summary) record(handle, status, message string) {
	switch status {
	case StatusCreated:
		s.Created++
	case StatusUpdated:
		s.Updated++
	case StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, Result{Handle: handle, Status: status, Message: message})
}

// Importer orchestrates batch product synchronization.
type Importer struct {
	store  store.Store
	sync   *catalog.Synchronizer
	logger *slog.Logger
}

func NewImporter(st store.Store, sync *catalog.Synchronizer, logger *slog.Logger) *Importer {
	return &Importer{store: st, sync: sync, logger: logger}
}

// ImportCSV parses the document, groups rows into products and synchronizes
// each product in its own transaction.
func (im *Importer) ImportCSV(ctx context.Context, text string) (Summary, error) {
	const op = "bulk.ImportCSV"

	table := csv.ParseTable(text)
	if table == nil || len(table.Rows) == 0 {
		return Summary{}, domain.Invalid(op, "document contains no data rows")
	}

	groups := groupRows(table)

	var summary Summary
	for _, g := range groups {
		payload, err := buildPayload(table, g)
		if err != nil {
			summary.record(g.handle, StatusFailed, domain.ErrorMessage(err))
			continue
		}
		im.syncOne(ctx, g.handle, payload, &summary)
	}

	im.logger.InfoContext(ctx, "csv import finished",
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// ImportPayloads synchronizes a JSON batch of desired product states.
// Identity per item is the payload handle, falling back to the slug of the
// title.
func (im *Importer) ImportPayloads(ctx context.Context, payloads []domain.ProductPayload) (Summary, error) {
	var summary Summary
	for i := range payloads {
		p := payloads[i]
		handle := ""
		if p.Handle != nil {
			handle = domain.Slugify(*p.Handle)
		}
		if handle == "" && p.Title != nil {
			handle = domain.Slugify(*p.Title)
		}
		if handle == "" {
			summary.record("", StatusFailed, "product needs a handle or a title")
			continue
		}
		if p.Handle == nil {
			p.Handle = &handle
		}
		im.syncOne(ctx, handle, &p, &summary)
	}

	im.logger.InfoContext(ctx, "batch import finished",
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// syncOne runs one product through the synchronizer, deciding create versus
// update by handle lookup.
func (im *Importer) syncOne(ctx context.Context, handle string, payload *domain.ProductPayload, summary *Summary) {
	identity := ""
	status := StatusCreated
	if _, err := im.store.GetProductByHandle(ctx, handle); err == nil {
		identity = handle
		status = StatusUpdated
	} else if domain.ErrorCode(err) != domain.ENOTFOUND {
		summary.record(handle, StatusFailed, domain.ErrorMessage(err))
		return
	}

	if _, err := im.sync.Synchronize(ctx, identity, payload); err != nil {
		im.logger.WarnContext(ctx, "product import failed",
			slog.String("handle", handle),
			slog.String("error", err.Error()),
		)
		summary.record(handle, StatusFailed, domain.ErrorMessage(err))
		return
	}
	summary.record(handle, status, "")
}

// rowGroup collects the row indexes belonging to one product, in document
// order, keyed by resolved handle.
type rowGroup struct {
	handle string
	rows   []int
}

// groupRows buckets rows by handle, or by the slug of the title when the
// handle cell is blank, preserving first-seen product order.
func groupRows(table *csv.Table) []rowGroup {
	var order []string
	byHandle := make(map[string]*rowGroup)

	for i, row := range table.Rows {
		handle := domain.Slugify(table.Get(row, colHandle))
		if handle == "" {
			handle = domain.Slugify(table.Get(row, colTitle))
		}
		if handle == "" {
			continue
		}
		g, ok := byHandle[handle]
		if !ok {
			g = &rowGroup{handle: handle}
			byHandle[handle] = g
			order = append(order, handle)
		}
		g.rows = append(g.rows, i)
	}

	groups := make([]rowGroup, 0, len(order))
	for _, h := range order {
		groups = append(groups, *byHandle[h])
	}
	return groups
}

// buildPayload assembles the desired state for one product from its rows.
// Scalars come from the first row that fills them; options are declared in
// option-column order with values in first-seen row order; images accumulate
// across all rows with protocol normalization and exact-match dedup; each
// row contributes a variant only when at least one variant cell is non-blank.
func buildPayload(table *csv.Table, g rowGroup) (*domain.ProductPayload, error) {
	const op = "bulk.buildPayload"

	payload := &domain.ProductPayload{Handle: &g.handle}

	optionNames := make([]string, maxOptionColumns)
	optionValues := make([][]string, maxOptionColumns)
	valueSeen := make([]map[string]bool, maxOptionColumns)
	for i := range valueSeen {
		valueSeen[i] = make(map[string]bool)
	}
	var imageURLs []string
	imageSeen := make(map[string]bool)

	addImage := func(raw string) {
		url := normalizeImageURL(raw)
		if url == "" || imageSeen[url] {
			return
		}
		imageSeen[url] = true
		imageURLs = append(imageURLs, url)
	}

	for _, idx := range g.rows {
		row := table.Rows[idx]

		fillString(&payload.Title, table.Get(row, colTitle))
		fillString(&payload.Description, table.Get(row, colDescription))
		fillString(&payload.Vendor, table.Get(row, colVendor))
		fillString(&payload.Category, table.Get(row, colCategory))

		if payload.Tags == nil {
			if raw := table.Get(row, colTags); raw != "" {
				payload.Tags = splitList(raw, ",")
			}
		}
		if payload.Status == nil {
			if raw := table.Get(row, colStatus); raw != "" {
				status, err := parseStatus(raw)
				if err != nil {
					return nil, err
				}
				payload.Status = &status
			}
		}
		if payload.PublishedAt == nil {
			if raw := table.Get(row, colPublishedAt); raw != "" {
				ts, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return nil, domain.Invalid(op, fmt.Sprintf("row %d: unparseable published timestamp %q", idx+2, raw))
				}
				payload.PublishedAt = &ts
			}
		}
		if payload.CollectionHandles == nil {
			if raw := table.Get(row, colCollections); raw != "" {
				payload.CollectionHandles = splitList(raw, "|")
			}
		}

		for _, url := range splitList(table.Get(row, colImages), "|") {
			addImage(url)
		}
		addImage(table.Get(row, colVariantImage))

		for i := 1; i <= maxOptionColumns; i++ {
			if optionNames[i-1] == "" {
				optionNames[i-1] = table.Get(row, optionNameCol(i))
			}
			if v := table.Get(row, optionValueCol(i)); v != "" && !valueSeen[i-1][v] {
				valueSeen[i-1][v] = true
				optionValues[i-1] = append(optionValues[i-1], v)
			}
		}

		variant, contributes, err := buildVariant(table, row, idx, optionNames)
		if err != nil {
			return nil, err
		}
		if contributes {
			payload.Variants = append(payload.Variants, variant)
		}
	}

	// Declare the option schema in column order so the persisted order is
	// the one the document states, not an inferred one.
	for i := 0; i < maxOptionColumns; i++ {
		if optionNames[i] == "" || len(optionValues[i]) == 0 {
			continue
		}
		payload.Options = append(payload.Options, domain.OptionInput{
			Name:   optionNames[i],
			Values: optionValues[i],
		})
	}

	if len(imageURLs) > 0 {
		media := make([]domain.MediaInput, 0, len(imageURLs))
		for _, url := range imageURLs {
			media = append(media, domain.MediaInput{URL: url, Type: domain.MediaTypeImage})
		}
		payload.Media = media
	}

	return payload, nil
}

// buildVariant extracts one variant from a row. A row with every variant
// cell blank contributes nothing, so image-only continuation rows never
// produce a spurious blank variant.
func buildVariant(table *csv.Table, row []string, idx int, optionNames []string) (domain.VariantInput, bool, error) {
	const op = "bulk.buildVariant"

	var v domain.VariantInput
	contributes := false

	if raw := table.Get(row, colVariantTitle); raw != "" {
		v.Title = &raw
		contributes = true
	}
	if raw := table.Get(row, colVariantSKU); raw != "" {
		v.SKU = &raw
		contributes = true
	}

	type decCell struct {
		col  string
		dest **decimal.Decimal
	}
	for _, c := range []decCell{
		{colVariantPrice, &v.Price},
		{colVariantCompare, &v.CompareAtPrice},
		{colVariantCost, &v.Cost},
		{colVariantWeight, &v.Weight},
	} {
		raw := table.Get(row, c.col)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.VariantInput{}, false, domain.Invalid(op, fmt.Sprintf("row %d: unparseable number %q in %s", idx+2, raw, c.col))
		}
		*c.dest = &d
		contributes = true
	}

	if raw := table.Get(row, colVariantStock); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return domain.VariantInput{}, false, domain.Invalid(op, fmt.Sprintf("row %d: unparseable inventory %q", idx+2, raw))
		}
		qty := int32(n)
		v.Inventory = &qty
		contributes = true
	}
	if raw := table.Get(row, colVariantLoc); raw != "" {
		v.LocationName = &raw
	}
	if raw := table.Get(row, colVariantImage); raw != "" {
		url := normalizeImageURL(raw)
		v.ImageURL = &url
	}

	for i := 1; i <= maxOptionColumns; i++ {
		value := table.Get(row, optionValueCol(i))
		if value == "" {
			continue
		}
		name := optionNames[i-1]
		if name == "" {
			return domain.VariantInput{}, false, domain.Invalid(op, fmt.Sprintf("row %d: option value %q has no option name", idx+2, value))
		}
		if v.OptionValues == nil {
			v.OptionValues = make(map[string]string, maxOptionColumns)
		}
		v.OptionValues[name] = value
		contributes = true
	}

	return v, contributes, nil
}

func fillString(dest **string, value string) {
	if *dest == nil && value != "" {
		v := value
		*dest = &v
	}
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseStatus(raw string) (domain.ProductStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ACTIVE":
		return domain.ProductStatusActive, nil
	case "DRAFT":
		return domain.ProductStatusDraft, nil
	case "ARCHIVED":
		return domain.ProductStatusArchived, nil
	}
	return "", domain.Invalid("bulk.parseStatus", fmt.Sprintf("unknown product status %q", raw))
}

// normalizeImageURL rewrites protocol-relative URLs to https.
func normalizeImageURL(raw string) string {
	url := strings.TrimSpace(raw)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
