package routes

import (
	"github.com/gofiber/fiber/v3"

	"joblens/internal/delivery/http/handler"
	"joblens/internal/ws"
)

type Registry struct {
	Health  *handler.HealthHandler
	Resume  *handler.ResumeHandler
	Extract *handler.ExtractHandler
	Analyze *handler.AnalyzeHandler
	Quota   *handler.QuotaHandler
	Cache   *handler.CacheHandler
	History *handler.HistoryHandler
	WS      *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.Resume.RegisterRoutes(v1)
	r.Extract.RegisterRoutes(v1)
	r.Analyze.RegisterRoutes(v1)
	r.Quota.RegisterRoutes(v1)
	r.Cache.RegisterRoutes(v1)
	r.History.RegisterRoutes(v1)

	if r.WS != nil {
		v1.Get("/ws/jobs", r.WS.HandleJobFeed)
	}
}
