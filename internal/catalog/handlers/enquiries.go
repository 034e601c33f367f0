package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/catalog/models"
)

// ============================================================
// Enquiry Intake
// ============================================================

var sizeRanges = map[string]bool{
	"S-XL":         true,
	"XS-XXL":       true,
	"XS-3XL":       true,
	"XS-5XL":       true,
	"One Size":     true,
	"Custom Range": true,
}

// CreateEnquiry принимает заявку; при невалидных полях отвечает
// success=false с детализацией по полям.
func (h *CatalogHandler) CreateEnquiry(c fiber.Ctx) error {
	var e models.Enquiry
	if err := json.Unmarshal(c.Body(), &e); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid json",
		})
	}

	fieldErrors := make(map[string]string)
	if e.FabricID == "" {
		fieldErrors["fabricId"] = "required"
	}
	if e.PrintType != "embroidery" && e.PrintType != "printing" {
		fieldErrors["printType"] = "must be embroidery or printing"
	}
	if e.Quantity <= 0 {
		fieldErrors["quantity"] = "must be a positive integer"
	}
	if !sizeRanges[e.SizeRange] {
		fieldErrors["sizeRange"] = "unknown size range"
	}
	if strings.TrimSpace(e.PhoneNumber) == "" {
		fieldErrors["phoneNumber"] = "required"
	}
	if e.DesignImageURL == "" {
		fieldErrors["designImageUrl"] = "required"
	}

	if len(fieldErrors) > 0 {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  fieldErrors,
		})
	}

	id, err := h.repo.CreateEnquiry(c.Context(), e)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func (h *CatalogHandler) ListEnquiries(c fiber.Ctx) error {
	enquiries, err := h.repo.ListEnquiries(c.Context())
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(enquiries)
}

func (h *CatalogHandler) GetEnquiry(c fiber.Ctx) error {
	e, err := h.repo.GetEnquiry(c.Context(), c.Params("id"))
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(e)
}

func (h *CatalogHandler) DeleteEnquiry(c fiber.Ctx) error {
	if err := h.repo.DeleteEnquiry(c.Context(), c.Params("id")); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Reviews
// ============================================================

func (h *CatalogHandler) ListReviews(c fiber.Ctx) error {
	publishedOnly := c.Query("published") == "true"
	reviews, err := h.repo.ListReviews(c.Context(), publishedOnly)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(reviews)
}

func (h *CatalogHandler) CreateReview(c fiber.Ctx) error {
	var rv models.Review
	if err := json.Unmarshal(c.Body(), &rv); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if rv.Author == "" || rv.Rating < 1 || rv.Rating > 5 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "author and rating 1-5 required"})
	}

	id, err := h.repo.CreateReview(c.Context(), rv)
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

func (h *CatalogHandler) UpdateReview(c fiber.Ctx) error {
	var rv models.Review
	if err := json.Unmarshal(c.Body(), &rv); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	rv.ID = c.Params("id")

	if err := h.repo.UpdateReview(c.Context(), rv); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(fiber.Map{"id": rv.ID})
}

func (h *CatalogHandler) DeleteReview(c fiber.Ctx) error {
	if err := h.repo.DeleteReview(c.Context(), c.Params("id")); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Settings
// ============================================================

func (h *CatalogHandler) ListSettings(c fiber.Ctx) error {
	settings, err := h.repo.ListSettings(c.Context())
	if err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(settings)
}

func (h *CatalogHandler) SetSetting(c fiber.Ctx) error {
	var s models.Setting
	if err := json.Unmarshal(c.Body(), &s); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	s.Key = c.Params("key")
	if s.Key == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "key required"})
	}

	if err := h.repo.SetSetting(c.Context(), s.Key, s.Value); err != nil {
		return h.notFoundOr500(c, err)
	}
	return c.JSON(fiber.Map{"key": s.Key})
}
