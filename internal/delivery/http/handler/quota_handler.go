package handler

import (
	"github.com/gofiber/fiber/v3"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/quota"
)

type QuotaHandler struct {
	ledger *quota.Ledger
}

func NewQuotaHandler(ledger *quota.Ledger) *QuotaHandler {
	return &QuotaHandler{ledger: ledger}
}

func (h *QuotaHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/quota", h.HandleStatus)
}

func (h *QuotaHandler) HandleStatus(c fiber.Ctx) error {
	status, err := h.ledger.Status(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not read quota", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.QuotaResponse{
		Remaining: status.Remaining,
		Total:     status.Total,
		Date:      status.Date,
	})
}
