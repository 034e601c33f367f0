package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"garment-studio/internal/studio/catalogclient"
	"garment-studio/internal/studio/clipart"
	"garment-studio/internal/studio/export"
	"garment-studio/internal/studio/ingest"
	"garment-studio/internal/studio/models"
	"garment-studio/internal/studio/scene"
	"garment-studio/internal/studio/session"
	"garment-studio/internal/studio/studioerr"
	"garment-studio/internal/studio/submit"
)

// ============================================================
// Studio Handler
// ============================================================

type StudioHandler struct {
	sessions *session.Manager
	catalog  *catalogclient.Client
	clipart  *clipart.Client
	exporter *export.Exporter
	orch     *submit.Orchestrator
	policy   ingest.Policy
}

func NewStudioHandler(
	sessions *session.Manager,
	catalog *catalogclient.Client,
	clip *clipart.Client,
	exporter *export.Exporter,
	orch *submit.Orchestrator,
	policy ingest.Policy,
) *StudioHandler {
	return &StudioHandler{
		sessions: sessions,
		catalog:  catalog,
		clipart:  clip,
		exporter: exporter,
		orch:     orch,
		policy:   policy,
	}
}

// ============================================================
// Sessions
// ============================================================

type sessionState struct {
	Token     string            `json:"token"`
	View      session.View      `json:"view"`
	Product   models.Product    `json:"product"`
	Color     models.Color      `json:"color"`
	Objects   []scene.Object    `json:"objects"`
	Originals []ingest.Original `json:"originals"`
}

// state собирает ответ о текущем состоянии сессии; лок держит вызывающий.
func state(s *session.Session) sessionState {
	return sessionState{
		Token:     s.Token,
		View:      s.View(),
		Product:   s.Product(),
		Color:     s.Color(),
		Objects:   s.Scene().Objects(),
		Originals: s.Originals(),
	}
}

// CreateSession заводит сессию конструктора на первом доступном продукте.
func (h *StudioHandler) CreateSession(c fiber.Ctx) error {
	products, err := h.catalog.CustomizableProducts(c.Context())
	if err != nil {
		log.Printf("[STUDIO] catalog fetch failed: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "catalog unavailable"})
	}
	if len(products) == 0 {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "no customizable products"})
	}

	sess := h.sessions.Create(products[0])
	log.Printf("[STUDIO] session %s created (product %s)", sess.Token, products[0].ID)

	sess.Lock()
	defer sess.Unlock()
	return c.Status(http.StatusCreated).JSON(state(sess))
}

// GetSession отдаёт состояние сессии.
func (h *StudioHandler) GetSession(c fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": studioerr.ErrSessionNotFound.Error()})
	}

	sess.Lock()
	defer sess.Unlock()
	return c.JSON(state(sess))
}

// session достаёт сессию из пути или отвечает 404.
func (h *StudioHandler) session(c fiber.Ctx) (*session.Session, error) {
	sess, ok := h.sessions.Get(c.Params("id"))
	if !ok {
		return nil, c.Status(http.StatusNotFound).JSON(fiber.Map{"error": studioerr.ErrSessionNotFound.Error()})
	}
	return sess, nil
}

// ============================================================
// Error mapping
// ============================================================

func errorStatus(err error) int {
	var vErr *studioerr.ValidationError
	var iErr *studioerr.IntakeError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &iErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, studioerr.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, studioerr.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, studioerr.ErrViewUnavailable):
		return http.StatusConflict
	case errors.Is(err, studioerr.ErrRemoteFetch):
		return http.StatusBadGateway
	case errors.Is(err, studioerr.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, studioerr.ErrMultiPathFill):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(c fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}

	var vErr *studioerr.ValidationError
	if errors.As(err, &vErr) {
		body["fields"] = vErr.Fields
	}
	var iErr *studioerr.IntakeError
	if errors.As(err, &iErr) && len(iErr.Fields) > 0 {
		body["fields"] = iErr.Fields
	}

	return c.Status(errorStatus(err)).JSON(body)
}
