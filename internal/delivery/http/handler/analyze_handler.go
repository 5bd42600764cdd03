package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/analyze"
	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/posting"
	"joblens/internal/quota"
	"joblens/internal/store"
)

type AnalyzeHandler struct {
	svc    *analyze.Service
	ledger *quota.Ledger
	kv     store.KV
}

func NewAnalyzeHandler(svc *analyze.Service, ledger *quota.Ledger, kv store.KV) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, ledger: ledger, kv: kv}
}

func (h *AnalyzeHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/analyze", h.HandleAnalyze)
}

// HandleAnalyze resolves a job posting (fresh HTML beats the remembered
// per-tab job), pairs it with the saved resume and runs the guarded call.
func (h *AnalyzeHandler) HandleAnalyze(c fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	job, err := h.resolveJob(c.Context(), req)
	if err != nil {
		return err
	}

	saved, found, err := store.LoadResume(c.Context(), h.kv)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not load resume", nil, err)
	}
	if !found {
		return analyze.ErrNoResume
	}

	res, err := h.svc.Analyze(c.Context(), job, saved.Raw)
	if err != nil {
		return err
	}

	status, err := h.ledger.Status(c.Context())
	if err != nil {
		status = quota.Status{}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AnalyzeResponse{
		Result: res.Result,
		Cached: res.Cached,
		Quota: dto.QuotaResponse{
			Remaining: status.Remaining,
			Total:     status.Total,
			Date:      status.Date,
		},
	})
}

func (h *AnalyzeHandler) resolveJob(ctx context.Context, req dto.AnalyzeRequest) (posting.Posting, error) {
	if req.HTML != "" {
		p, ok := posting.Extract(req.HTML, req.URL, time.Now().UTC())
		if !ok {
			return posting.Posting{}, analyze.ErrNoJob
		}
		return p, nil
	}

	if req.TabID != "" {
		p, found, err := store.LoadTabJob(ctx, h.kv, req.TabID)
		if err != nil {
			return posting.Posting{}, middleware.NewAppError(fiber.StatusInternalServerError, "could not load job for tab", nil, err)
		}
		if found {
			return p, nil
		}
	}

	return posting.Posting{}, analyze.ErrNoJob
}
