package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"joblens/internal/config"
	"joblens/internal/delivery/http/handler"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/delivery/http/routes"
	"joblens/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config) (*App, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware()
	f.Use(errMw.Middleware())

	registry := &routes.Registry{
		Health:  handler.NewHealthHandler(container.Service),
		Resume:  handler.NewResumeHandler(container.Extractor, container.KV),
		Extract: handler.NewExtractHandler(container.KV),
		Analyze: handler.NewAnalyzeHandler(container.Service, container.Ledger, container.KV),
		Quota:   handler.NewQuotaHandler(container.Ledger),
		Cache:   handler.NewCacheHandler(container.Cache),
		History: handler.NewHistoryHandler(container.KV),
		WS:      ws.NewHandler(container.Hub, container.Logger),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: container}, nil
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, a.Container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
