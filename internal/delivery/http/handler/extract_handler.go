package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/posting"
	"joblens/internal/store"
)

type ExtractHandler struct {
	kv store.KV
}

func NewExtractHandler(kv store.KV) *ExtractHandler {
	return &ExtractHandler{kv: kv}
}

func (h *ExtractHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/extract", h.HandleExtract)
}

// HandleExtract runs one extraction pass over the submitted page HTML.
// Failure to resolve a title is absence, not an error: the response says
// no job was detected.
func (h *ExtractHandler) HandleExtract(c fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	if req.HTML == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "html is required", nil, nil)
	}

	p, ok := posting.Extract(req.HTML, req.URL, time.Now().UTC())
	if !ok {
		return response.Success(c, fiber.StatusOK, "no job detected", dto.ExtractResponse{Detected: false})
	}

	if req.TabID != "" {
		if err := store.SaveTabJob(c.Context(), h.kv, req.TabID, p); err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, "could not remember job for tab", nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractResponse{Detected: true, Job: &p})
}
