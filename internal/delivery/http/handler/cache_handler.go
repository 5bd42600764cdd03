package handler

import (
	"github.com/gofiber/fiber/v3"

	"joblens/internal/cache"
	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
)

type CacheHandler struct {
	cache *cache.Cache
}

func NewCacheHandler(c *cache.Cache) *CacheHandler {
	return &CacheHandler{cache: c}
}

func (h *CacheHandler) RegisterRoutes(r fiber.Router) {
	r.Delete("/cache", h.HandleClear)
}

func (h *CacheHandler) HandleClear(c fiber.Ctx) error {
	deleted, err := h.cache.Clear(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "could not clear cache", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "cache cleared", dto.CacheClearResponse{Deleted: deleted})
}
