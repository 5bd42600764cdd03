package handler

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/resume"
	"joblens/internal/store"
	"joblens/internal/textacquire"
)

const maxUploadBytes = 10 << 20

type ResumeHandler struct {
	extractor *textacquire.Extractor
	kv        store.KV
}

func NewResumeHandler(extractor *textacquire.Extractor, kv store.KV) *ResumeHandler {
	return &ResumeHandler{extractor: extractor, kv: kv}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/resume", h.HandleUpload)
	r.Get("/resume", h.HandleGet)
}

// HandleUpload accepts either a multipart "file" upload or a JSON body with
// pasted text (the manual fallback when no parser is available).
func (h *ResumeHandler) HandleUpload(c fiber.Ctx) error {
	text, err := h.acquireText(c)
	if err != nil {
		return err
	}

	parsed := resume.Parse(text)
	saved := store.SavedResume{
		Raw:     text,
		Parsed:  parsed,
		SavedAt: time.Now().UTC(),
	}
	if err := store.SaveResume(c.Context(), h.kv, saved); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not save resume", nil, err)
	}

	return response.Success(c, fiber.StatusOK, "resume saved", dto.ResumeResponse{
		Parsed:  parsed,
		SavedAt: saved.SavedAt.Format(time.RFC3339),
	})
}

func (h *ResumeHandler) HandleGet(c fiber.Ctx) error {
	saved, found, err := store.LoadResume(c.Context(), h.kv)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not load resume", nil, err)
	}
	if !found {
		return middleware.NewAppError(fiber.StatusNotFound, "no resume saved yet", nil, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ResumeResponse{
		Parsed:  saved.Parsed,
		SavedAt: saved.SavedAt.Format(time.RFC3339),
	})
}

func (h *ResumeHandler) acquireText(c fiber.Ctx) (string, error) {
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		if fh.Size > maxUploadBytes {
			return "", middleware.NewAppError(fiber.StatusBadRequest, "file too large", nil, nil)
		}
		format, err := textacquire.FormatFromFilename(fh.Filename)
		if err != nil {
			return "", err
		}
		f, err := fh.Open()
		if err != nil {
			return "", middleware.NewAppError(fiber.StatusBadRequest, "could not read upload", nil, err)
		}
		defer func() { _ = f.Close() }()
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		if err != nil {
			return "", middleware.NewAppError(fiber.StatusBadRequest, "could not read upload", nil, err)
		}
		return h.extractor.Extract(c.Context(), textacquire.Document{Data: data, Format: format})
	}

	var req dto.ResumeUploadRequest
	if err := c.Bind().Body(&req); err != nil || req.Text == "" {
		return "", middleware.NewAppError(fiber.StatusBadRequest, "upload a file or provide pasted text", nil, err)
	}
	return h.extractor.Extract(c.Context(), textacquire.Document{Data: []byte(req.Text), Format: textacquire.FormatText})
}
