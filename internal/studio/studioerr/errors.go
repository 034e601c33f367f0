package studioerr

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================
// Studio Errors
// ============================================================

var (
	// ErrFileTooLarge — загруженный файл превышает лимит, проверяется до декодирования.
	ErrFileTooLarge = errors.New("file too large")

	// ErrDecode — файл не удалось декодировать как изображение.
	ErrDecode = errors.New("image decode failed")

	// ErrViewUnavailable — у текущего цвета нет фоновой картинки для этого вида.
	ErrViewUnavailable = errors.New("view has no background for current color")

	// ErrRemoteFetch — ошибка поиска/загрузки иконки во внешнем сервисе.
	ErrRemoteFetch = errors.New("remote icon fetch failed")

	// ErrUploadFailed — загрузка одного файла не удалась (не фатально для submit).
	ErrUploadFailed = errors.New("asset upload failed")

	// ErrMultiPathFill — перекраска составной иконки не поддерживается.
	ErrMultiPathFill = errors.New("fill edits apply only to single-path objects")

	// ErrObjectNotFound — объект с таким id отсутствует на сцене.
	ErrObjectNotFound = errors.New("object not found")

	// ErrSessionNotFound — сессия не найдена или истекла.
	ErrSessionNotFound = errors.New("session not found")
)

// ============================================================
// Validation
// ============================================================

// ValidationError перечисляет обязательные поля, не заполненные в форме.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Fields, ", "))
}

// ============================================================
// Intake rejection
// ============================================================

// IntakeError — отказ сервиса приёма заявок с деталями по полям, если они есть.
type IntakeError struct {
	Message string
	Fields  map[string]string
}

func (e *IntakeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "enquiry rejected"
}
