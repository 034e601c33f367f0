package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Clipart Handlers
// ============================================================

// SearchClipart ищет иконки во внешнем сервисе.
func (h *StudioHandler) SearchClipart(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	query := c.Query("q")
	if query == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "q required"})
	}

	icons, err := h.clipart.Search(c.Context(), query)
	if err != nil {
		log.Printf("[STUDIO] clipart search %q failed: %v", query, err)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"icons": icons})
}

type placeClipartRequest struct {
	IconID string `json:"iconId"`
}

// PlaceClipart добавляет выбранную иконку одной группой на сцену.
// При ошибке загрузки сцена не меняется.
func (h *StudioHandler) PlaceClipart(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req placeClipartRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if req.IconID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "iconId required"})
	}

	obj, err := h.clipart.PlaceObject(c.Context(), req.IconID)
	if err != nil {
		log.Printf("[STUDIO] clipart place %q failed: %v", req.IconID, err)
		return fail(c, err)
	}

	sess.Lock()
	defer sess.Unlock()

	id := sess.Scene().Add(obj)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id, "objects": sess.Scene().Objects()})
}
