package bulk_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/hollis/threadbare/internal/bulk"
	"github.com/hollis/threadbare/internal/catalog"
	"github.com/hollis/threadbare/internal/domain"
	"github.com/hollis/threadbare/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImporter(t *testing.T) (*bulk.Importer, *bulk.Exporter, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sync := catalog.NewSynchronizer(st, logger)
	return bulk.NewImporter(st, sync, logger), bulk.NewExporter(st, logger), st
}

const header = "Handle,Title,Vendor,Status,Collections,Images," +
	"Option1 Name,Option1 Value,Option2 Name,Option2 Value," +
	"Variant SKU,Variant Price,Variant Inventory\n"

func TestImportCSVCreatesProducts(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	doc := header +
		"classic-tee,Classic Tee,Acme,ACTIVE,,,Size,S,Color,Black,TEE-S,19.99,5\n" +
		"classic-tee,,,,,,Size,M,Color,Black,TEE-M,19.99,3\n" +
		"tote,Canvas Tote,Acme,DRAFT,,,,,,,TOTE-1,35,2\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Failed)

	tee, err := st.GetProductByHandle(ctx, "classic-tee")
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee", tee.Title)
	assert.Equal(t, domain.ProductStatusActive, tee.Status)

	variants, err := st.GetProductVariants(ctx, tee.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "S / Black", variants[0].Title)
	assert.Equal(t, "M / Black", variants[1].Title)

	// Options keep the order the option columns declare.
	options, err := st.GetProductOptions(ctx, tee.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Size", options[0].Name)
	assert.Equal(t, "Color", options[1].Name)
}

func TestImportCSVKeepsOptionColumnOrder(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	// Column order deliberately disagrees with alphabetical order.
	doc := header +
		"tee,Tee,Acme,DRAFT,,,Size,S,Color,Black,TEE-S-B,19.99,\n" +
		"tee,,,,,,Size,S,Color,White,TEE-S-W,19.99,\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)

	p, err := st.GetProductByHandle(ctx, "tee")
	require.NoError(t, err)

	options, err := st.GetProductOptions(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Size", options[0].Name)
	assert.Equal(t, "Color", options[1].Name)
	assert.Equal(t, []string{"Black", "White"}, options[1].Values)

	variants, err := st.GetProductVariants(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "S / Black", variants[0].Title)
	assert.Equal(t, "S / White", variants[1].Title)
}

func TestImportCSVVariantWithoutPrice(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	doc := header + "tee,Tee,Acme,DRAFT,,,,,,,TEE-1,,\n"
	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)

	p, err := st.GetProductByHandle(ctx, "tee")
	require.NoError(t, err)
	variants, err := st.GetProductVariants(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Nil(t, variants[0].Price, "a SKU-only row carries no price")
}

func TestImportCSVUpdatesExisting(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	doc := header + "classic-tee,Classic Tee,Acme,ACTIVE,,,,,,,TEE-1,19.99,\n"
	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	doc = header + "classic-tee,Classic Tee v2,Acme,ACTIVE,,,,,,,TEE-1,24.99,\n"
	summary, err = importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Created)

	p, err := st.GetProductByHandle(ctx, "classic-tee")
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee v2", p.Title)
}

func TestImportCSVGroupsByTitleSlugWhenHandleBlank(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	doc := header + ",Wool Scarf,Acme,DRAFT,,,,,,,SCARF-1,25,\n"
	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	_, err = st.GetProductByHandle(ctx, "wool-scarf")
	assert.NoError(t, err)
}

func TestImportCSVImageOnlyRowAddsNoVariant(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	doc := header +
		"tee,Tee,Acme,DRAFT,,https://cdn.example.com/a.jpg,,,,,TEE-1,10,\n" +
		"tee,,,,,//cdn.example.com/b.jpg,,,,,,,\n" +
		"tee,,,,,https://cdn.example.com/a.jpg,,,,,,,\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Created)

	p, err := st.GetProductByHandle(ctx, "tee")
	require.NoError(t, err)

	variants, err := st.GetProductVariants(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, variants, 1, "image-only rows must not create variants")

	media, err := st.GetProductMedia(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, media, 2, "images deduplicated after protocol normalization")
	assert.Equal(t, "https://cdn.example.com/a.jpg", media[0].URL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", media[1].URL)
}

func TestImportCSVPartialFailure(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	// Product two has an option value with no resolvable option name.
	doc := header +
		"alpha,Alpha,Acme,DRAFT,,,Size,S,,,A-1,10,\n" +
		"bravo,Bravo,Acme,DRAFT,,,,S,,,B-1,10,\n" +
		"charlie,Charlie,Acme,DRAFT,,,Size,L,,,C-1,10,\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, bulk.StatusCreated, summary.Results[0].Status)
	assert.Equal(t, bulk.StatusFailed, summary.Results[1].Status)
	assert.Equal(t, "bravo", summary.Results[1].Handle)
	assert.NotEmpty(t, summary.Results[1].Message)
	assert.Equal(t, bulk.StatusCreated, summary.Results[2].Status)

	_, err = st.GetProductByHandle(ctx, "alpha")
	assert.NoError(t, err)
	_, err = st.GetProductByHandle(ctx, "bravo")
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	_, err = st.GetProductByHandle(ctx, "charlie")
	assert.NoError(t, err)
}

func TestImportCSVBadNumberFailsProduct(t *testing.T) {
	importer, _, _ := newImporter(t)

	doc := header + "tee,Tee,Acme,DRAFT,,,,,,,TEE-1,not-a-price,\n"
	summary, err := importer.ImportCSV(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Created)
}

func TestImportCSVEmptyDocument(t *testing.T) {
	importer, _, _ := newImporter(t)

	_, err := importer.ImportCSV(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestImportPayloads(t *testing.T) {
	importer, _, st := newImporter(t)
	ctx := context.Background()

	title1 := "Classic Tee"
	title2 := "Canvas Tote"
	summary, err := importer.ImportPayloads(ctx, []domain.ProductPayload{
		{Title: &title1},
		{Title: &title2},
		{}, // no handle, no title
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Created)
	assert.Equal(t, 1, summary.Failed)

	_, err = st.GetProductByHandle(ctx, "classic-tee")
	assert.NoError(t, err)
}

func TestExportVariantlessProductRoundTrip(t *testing.T) {
	importer, exporter, st := newImporter(t)
	ctx := context.Background()

	doc := "Handle,Title,Status,Published At\n" +
		"lookbook,Lookbook,ACTIVE,2026-03-01T00:00:00Z\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)

	exported, err := exporter.ExportCSV(ctx)
	require.NoError(t, err)
	assert.Contains(t, exported, "2026-03-01T00:00:00Z")

	importer2, _, st2 := newImporter(t)
	summary2, err := importer2.ImportCSV(ctx, exported)
	require.NoError(t, err)
	require.Equal(t, 1, summary2.Created)
	require.Equal(t, 0, summary2.Failed)

	original, err := st.GetProductByHandle(ctx, "lookbook")
	require.NoError(t, err)
	reimported, err := st2.GetProductByHandle(ctx, "lookbook")
	require.NoError(t, err)

	reVariants, err := st2.GetProductVariants(ctx, reimported.ID)
	require.NoError(t, err)
	assert.Empty(t, reVariants, "a variant-less product stays variant-less")

	require.NotNil(t, reimported.PublishedAt)
	assert.True(t, original.PublishedAt.Equal(*reimported.PublishedAt))
}

func TestExportImportRoundTrip(t *testing.T) {
	importer, exporter, st := newImporter(t)
	ctx := context.Background()

	doc := header +
		`round-trip,"Round Trip, Deluxe",Acme,ACTIVE,,https://cdn.example.com/rt.jpg,Size,S,Color,Black,RT-S-B,19.99,5` + "\n" +
		"round-trip,,,,,,Size,M,Color,Black,RT-M-B,19.99,3\n"

	summary, err := importer.ImportCSV(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Created)

	exported, err := exporter.ExportCSV(ctx)
	require.NoError(t, err)

	// Re-import into a fresh catalog.
	importer2, _, st2 := newImporter(t)
	summary2, err := importer2.ImportCSV(ctx, exported)
	require.NoError(t, err)
	require.Equal(t, 1, summary2.Created)
	require.Equal(t, 0, summary2.Failed)

	original, err := st.GetProductByHandle(ctx, "round-trip")
	require.NoError(t, err)
	reimported, err := st2.GetProductByHandle(ctx, "round-trip")
	require.NoError(t, err)
	assert.Equal(t, original.Title, reimported.Title)
	assert.Equal(t, original.Status, reimported.Status)

	origOptions, err := st.GetProductOptions(ctx, original.ID)
	require.NoError(t, err)
	reOptions, err := st2.GetProductOptions(ctx, reimported.ID)
	require.NoError(t, err)
	require.Len(t, reOptions, len(origOptions))
	for i := range origOptions {
		assert.Equal(t, origOptions[i].Name, reOptions[i].Name)
		assert.ElementsMatch(t, origOptions[i].Values, reOptions[i].Values)
	}

	origVariants, err := st.GetProductVariants(ctx, original.ID)
	require.NoError(t, err)
	reVariants, err := st2.GetProductVariants(ctx, reimported.ID)
	require.NoError(t, err)
	require.Len(t, reVariants, len(origVariants))
	for i := range origVariants {
		assert.Equal(t, origVariants[i].OptionValues, reVariants[i].OptionValues)
		assert.Equal(t, origVariants[i].Title, reVariants[i].Title)
	}
}
