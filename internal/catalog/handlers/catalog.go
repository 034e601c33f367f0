package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/catalog/models"
	"garment-studio/internal/catalog/repository"
	"garment-studio/internal/catalog/storage"
)

// ============================================================
// Catalog Handler
// ============================================================

type CatalogHandler struct {
	repo      *repository.Repository
	storage   *storage.FileStorage
	publicURL string
}

func NewCatalogHandler(repo *repository.Repository, store *storage.FileStorage, publicURL string) *CatalogHandler {
	return &CatalogHandler{repo: repo, storage: store, publicURL: publicURL}
}

func (h *CatalogHandler) notFoundOr500(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	log.Printf("[CATALOG] db error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

// ============================================================
// Products
// ============================================================

// ListCustomizable отдаёт продукты с цветами и тканями для конструктора.
func (h *CatalogHandler) ListCustomizable(c fiber.Ctx) error {
	products, err := h.repo.ListCustomizable(c.Context())
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	if products == nil {
		products = []models.CustomizableProduct{}
	}
	return c.JSON(products)
}

func (h *CatalogHandler) ListProducts(c fiber.Ctx) error {
	products, err := h.repo.ListProducts(c.Context())
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c fiber.Ctx) error {
	p, err := h.repo.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(p)
}

func (h *CatalogHandler) CreateProduct(c fiber.Ctx) error {
	var p models.Product
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if p.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}

	id, err := h.repo.CreateProduct(c.Context(), p)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CatalogHandler) UpdateProduct(c fiber.Ctx) error {
	var p models.Product
	if err := json.Unmarshal(c.Body(), &p); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	p.ID = c.Params("id")

	if err := h.repo.UpdateProduct(c.Context(), p); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(fiber.Map{"id": p.ID})
}

func (h *CatalogHandler) DeleteProduct(c fiber.Ctx) error {
	if err := h.repo.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Colors
// ============================================================

func (h *CatalogHandler) ListColors(c fiber.Ctx) error {
	colors, err := h.repo.ListColors(c.Context(), c.Params("id"))
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(colors)
}

func (h *CatalogHandler) CreateColor(c fiber.Ctx) error {
	var col models.Color
	if err := json.Unmarshal(c.Body(), &col); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	col.ProductID = c.Params("id")
	if col.Name == "" || col.Hex == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name and hex required"})
	}

	id, err := h.repo.CreateColor(c.Context(), col)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CatalogHandler) DeleteColor(c fiber.Ctx) error {
	if err := h.repo.DeleteColor(c.Context(), c.Params("colorId")); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Fabrics
// ============================================================

func (h *CatalogHandler) ListFabrics(c fiber.Ctx) error {
	fabrics, err := h.repo.ListFabrics(c.Context())
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(fabrics)
}

func (h *CatalogHandler) CreateFabric(c fiber.Ctx) error {
	var f models.Fabric
	if err := json.Unmarshal(c.Body(), &f); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if f.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}

	id, err := h.repo.CreateFabric(c.Context(), f)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CatalogHandler) UpdateFabric(c fiber.Ctx) error {
	var f models.Fabric
	if err := json.Unmarshal(c.Body(), &f); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	f.ID = c.Params("id")

	if err := h.repo.UpdateFabric(c.Context(), f); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(fiber.Map{"id": f.ID})
}

func (h *CatalogHandler) DeleteFabric(c fiber.Ctx) error {
	if err := h.repo.DeleteFabric(c.Context(), c.Params("id")); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
