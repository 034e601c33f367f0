package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/studio/session"
	"garment-studio/internal/studio/submit"
)

// ============================================================
// Preview & Submit
// ============================================================

// Preview собирает композит одного вида и отдаёт его как JPEG.
func (h *StudioHandler) Preview(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	view, err := session.ParseView(c.Params("view"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess.Lock()
	defer sess.Unlock()

	sess.CommitActiveView()
	data, err := h.exporter.ExportView(c.Context(), sess, view)
	sess.RestoreActive()
	if err != nil {
		log.Printf("[STUDIO] preview %s failed: %v", view, err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if data == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "view has no design"})
	}

	c.Set("Content-Type", "image/jpeg")
	return c.Send(data)
}

// Submit валидирует форму и проводит заявку целиком: композиты,
// оригиналы, запрос в сервис приёма.
func (h *StudioHandler) Submit(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var form submit.Form
	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := h.orch.Submit(c.Context(), sess, form); err != nil {
		log.Printf("[STUDIO] session %s: submit failed: %v", sess.Token, err)
		return fail(c, err)
	}

	log.Printf("[STUDIO] session %s: enquiry submitted", sess.Token)
	return c.JSON(fiber.Map{"success": true})
}
