package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/studio/scene"
)

// ============================================================
// Object Handlers
// ============================================================

type addObjectRequest struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Fill     string  `json:"fill"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
}

// AddObject добавляет текст или фигуру на активный вид.
func (h *StudioHandler) AddObject(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var req addObjectRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	obj := scene.Object{
		X:        req.X,
		Y:        req.Y,
		Width:    req.Width,
		Height:   req.Height,
		Fill:     req.Fill,
		Text:     req.Text,
		FontSize: req.FontSize,
	}

	switch req.Type {
	case string(scene.TypeText):
		obj.Type = scene.TypeText
		if obj.Text == "" {
			obj.Text = "Your Text"
		}
		if obj.FontSize <= 0 {
			obj.FontSize = 24
		}
	case string(scene.TypeRect):
		obj.Type = scene.TypeRect
	case string(scene.TypeEllipse):
		obj.Type = scene.TypeEllipse
	default:
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "type must be text, rect or ellipse"})
	}

	if obj.Fill == "" {
		obj.Fill = "#000000"
	}
	if obj.Type != scene.TypeText && (obj.Width <= 0 || obj.Height <= 0) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "width and height required"})
	}

	sess.Lock()
	defer sess.Unlock()

	id := sess.Scene().Add(obj)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id, "objects": sess.Scene().Objects()})
}

// UpdateObject применяет частичное изменение объекта.
func (h *StudioHandler) UpdateObject(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	var patch scene.Patch
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Scene().Update(c.Params("oid"), patch); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"objects": sess.Scene().Objects()})
}

// RemoveObject убирает объект со сцены.
func (h *StudioHandler) RemoveObject(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Scene().Remove(c.Params("oid")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"objects": sess.Scene().Objects()})
}
