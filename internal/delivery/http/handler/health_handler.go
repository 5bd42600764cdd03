package handler

import (
	"github.com/gofiber/fiber/v3"

	"joblens/internal/analyze"
	"joblens/internal/delivery/http/dto"
	"joblens/internal/pkg/response"
)

type HealthHandler struct {
	svc *analyze.Service
}

func NewHealthHandler(svc *analyze.Service) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
}

// HandleHealth always reports local liveness; backend reachability is
// best-effort and never fails the endpoint.
func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	out := dto.HealthResponse{Status: "ok"}

	if h.svc != nil {
		if bh, err := h.svc.Health(c.Context()); err == nil {
			out.Backend = &dto.BackendHealth{Reachable: true, Service: bh.Service, Status: bh.Status}
		} else {
			out.Backend = &dto.BackendHealth{Reachable: false}
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
