package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/store"
)

type HistoryHandler struct {
	kv store.KV
}

func NewHistoryHandler(kv store.KV) *HistoryHandler {
	return &HistoryHandler{kv: kv}
}

func (h *HistoryHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/history", h.HandleList)
}

func (h *HistoryHandler) HandleList(c fiber.Ctx) error {
	entries, err := store.LoadHistory(c.Context(), h.kv)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not load history", nil, err)
	}

	out := make([]dto.HistoryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryItem{
			ID:              e.ID,
			JobTitle:        e.JobTitle,
			Company:         e.Company,
			MatchPercentage: e.MatchPercentage,
			URL:             e.URL,
			AnalyzedAt:      e.AnalyzedAt.UTC().Format(time.RFC3339),
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
