package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/studio/session"
)

// ============================================================
// View / Color / Product Switching
// ============================================================

type switchViewRequest struct {
	View string `json:"view"`
}

// SwitchView переключает активный вид с сохранением снимка текущего.
func (h *StudioHandler) SwitchView(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req switchViewRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	view, err := session.ParseView(req.View)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.SwitchView(view); err != nil {
		log.Printf("[STUDIO] session %s: switch to %s refused: %v", sess.Token, view, err)
		return fail(c, err)
	}
	return c.JSON(state(sess))
}

type switchColorRequest struct {
	ColorID string `json:"colorId"`
}

// SwitchColor меняет цвет мокапа, дизайн остаётся на месте.
func (h *StudioHandler) SwitchColor(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req switchColorRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.SwitchColor(req.ColorID); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(state(sess))
}

type switchProductRequest struct {
	ProductID string `json:"productId"`
}

// SwitchProduct меняет модель; все снимки и сцена сбрасываются.
func (h *StudioHandler) SwitchProduct(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req switchProductRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	product, err := h.catalog.Product(c.Context(), req.ProductID)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	sess.Lock()
	defer sess.Unlock()

	sess.SwitchProduct(product)
	return c.JSON(state(sess))
}
