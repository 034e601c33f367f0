package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"garment-studio/internal/catalog/models"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background(), "../../../migrations/001_init_catalog.sql"))
	return repo
}

func TestInitSeedsCatalogOnce(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Classic T-Shirt", products[0].Name)
	assert.True(t, products[0].Customizable)

	// повторный Init не дублирует сид
	require.NoError(t, repo.Init(ctx, "../../../migrations/001_init_catalog.sql"))
	products, err = repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestListCustomizableJoinsColorsAndFabrics(t *testing.T) {
	repo := testRepo(t)

	out, err := repo.ListCustomizable(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	require.Len(t, p.Colors, 2)
	require.Len(t, p.Fabrics, 3)

	byName := map[string]models.Color{}
	for _, c := range p.Colors {
		byName[c.Name] = c
	}
	assert.NotEmpty(t, byName["White"].SideImageURL)
	assert.Empty(t, byName["Black"].SideImageURL, "у чёрного мокапа нет бокового вида")
}

func TestProductCRUD(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateProduct(ctx, models.Product{Name: "Hoodie", Description: "Fleece"})
	require.NoError(t, err)

	got, err := repo.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hoodie", got.Name)
	assert.False(t, got.Customizable)

	got.Customizable = true
	require.NoError(t, repo.UpdateProduct(ctx, *got))

	got, err = repo.GetProduct(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Customizable)

	require.NoError(t, repo.DeleteProduct(ctx, id))
	_, err = repo.GetProduct(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateMissingProductReturnsNotFound(t *testing.T) {
	repo := testRepo(t)

	err := repo.UpdateProduct(context.Background(), models.Product{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnquiryRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateEnquiry(ctx, models.Enquiry{
		FabricID:        "cotton",
		PrintType:       "printing",
		Quantity:        120,
		SizeRange:       "S-XL",
		PhoneNumber:     "+7 900 000-00-00",
		DesignImageURL:  "https://cdn.example/design-front.jpg",
		OriginalLogoURL: `["https://cdn.example/logo-0.png"]`,
	})
	require.NoError(t, err)

	got, err := repo.GetEnquiry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 120, got.Quantity)
	assert.Equal(t, "S-XL", got.SizeRange)
	assert.Empty(t, got.BackDesignImageURL)
	assert.Equal(t, `["https://cdn.example/logo-0.png"]`, got.OriginalLogoURL)

	list, err := repo.ListEnquiries(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteEnquiry(ctx, id))
	_, err = repo.GetEnquiry(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewsPublishedFilter(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	_, err := repo.CreateReview(ctx, models.Review{Author: "A", Rating: 5, Comment: "great", Published: true})
	require.NoError(t, err)
	_, err = repo.CreateReview(ctx, models.Review{Author: "B", Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	all, err := repo.ListReviews(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	published, err := repo.ListReviews(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "A", published[0].Author)
}

func TestSettingsUpsert(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	v, err := repo.GetSetting(ctx, "company_name")
	require.NoError(t, err)
	assert.Equal(t, "Garment Works", v)

	require.NoError(t, repo.SetSetting(ctx, "company_name", "Garment Works Ltd"))
	v, err = repo.GetSetting(ctx, "company_name")
	require.NoError(t, err)
	assert.Equal(t, "Garment Works Ltd", v)

	_, err = repo.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
