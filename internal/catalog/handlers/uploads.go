package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Binary Uploads
// ============================================================

// UploadFile принимает один файл и возвращает публичный URL.
func (h *CatalogHandler) UploadFile(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required in multipart/form-data"})
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

	name := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	if _, err := h.storage.Save(name, data); err != nil {
		log.Printf("[CATALOG] save upload error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}

	log.Printf("[CATALOG] stored upload %s (%d bytes)", name, len(data))
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"url": fmt.Sprintf("%s/files/%s", h.publicURL, name),
	})
}

// GetFile отдаёт сохранённый файл.
func (h *CatalogHandler) GetFile(c fiber.Ctx) error {
	path, err := h.storage.Path(c.Params("name"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad file name"})
	}
	return c.SendFile(path)
}
