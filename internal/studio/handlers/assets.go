package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/studioerr"
)

// ============================================================
// Asset Upload
// ============================================================

// UploadAsset принимает картинку пользователя: лимит размера, даунскейл,
// пережатие по Policy, объект на сцену и оригинал в список для submit.
func (h *StudioHandler) UploadAsset(c fiber.Ctx) error {
	sess, err := h.session(c)
	if sess == nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
	}

	// потолок проверяем по заявленному размеру ещё до чтения
	if fileHeader.Size > h.policy.MaxUploadBytes {
		return fail(c, studioerr.ErrFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	result, err := ingest.Process(fileHeader.Filename, data, h.policy)
	if err != nil {
		log.Printf("[STUDIO] ingest %s failed: %v", fileHeader.Filename, err)
		return fail(c, err)
	}

	obj := scene.Object{
		Type:      scene.TypeImage,
		X:         100,
		Y:         100,
		ScaleX:    result.InitialScale,
		ScaleY:    result.InitialScale,
		ImageData: result.DisplayDataURL,
	}

	sess.Lock()
	defer sess.Unlock()

	id := sess.Scene().Add(obj)
	sess.AddOriginal(result.Original)

	log.Printf("[STUDIO] session %s: asset %s ingested (%dx%d, resized=%v)",
		sess.Token, fileHeader.Filename, result.Width, result.Height, result.Resized)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":        id,
		"width":     result.Width,
		"height":    result.Height,
		"resized":   result.Resized,
		"originals": len(sess.Originals()),
	})
}
