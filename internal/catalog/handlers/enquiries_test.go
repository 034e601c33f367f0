package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"garment-studio/internal/catalog/repository"
	"garment-studio/internal/catalog/storage"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.New(db)
	require.NoError(t, repo.Init(t.Context(), "../../../migrations/001_init_catalog.sql"))

	h := NewCatalogHandler(repo, storage.NewFileStorage(t.TempDir()), "http://localhost:3001")

	app := fiber.New()
	app.Post("/enquiries", h.CreateEnquiry)
	app.Get("/products/customizable", h.ListCustomizable)
	return app
}

func TestCreateEnquiryRejectsInvalidFields(t *testing.T) {
	app := testApp(t)

	body := `{"fabricId":"","printType":"stamping","quantity":0,"sizeRange":"M","phoneNumber":" "}`
	req := httptest.NewRequest("POST", "/enquiries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 422, resp.StatusCode)

	var out struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	for _, field := range []string{"fabricId", "printType", "quantity", "sizeRange", "phoneNumber", "designImageUrl"} {
		assert.Contains(t, out.Errors, field)
	}
}

func TestCreateEnquiryAcceptsValidPayload(t *testing.T) {
	app := testApp(t)

	body := `{
        "fabricId": "cotton",
        "printType": "printing",
        "quantity": 75,
        "sizeRange": "XS-XXL",
        "phoneNumber": "+7 900 000-00-00",
        "designImageUrl": "http://localhost:3001/files/design.jpg",
        "originalLogoUrl": "[\"http://localhost:3001/files/logo.png\"]"
    }`
	req := httptest.NewRequest("POST", "/enquiries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 201, resp.StatusCode)

	var out struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.ID)
}

func TestListCustomizableShape(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/products/customizable", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var out []struct {
		Name    string           `json:"name"`
		Colors  []map[string]any `json:"colors"`
		Fabrics []map[string]any `json:"availableFabrics"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Classic T-Shirt", out[0].Name)
	assert.Len(t, out[0].Colors, 2)
	assert.Len(t, out[0].Fabrics, 3)
}
