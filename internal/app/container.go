package app

import (
	"context"
	"log"
	"os"

	"joblens/internal/analyze"
	"joblens/internal/cache"
	"joblens/internal/config"
	"joblens/internal/quota"
	"joblens/internal/store"
	"joblens/internal/textacquire"
	"joblens/internal/ws"
)

type Container struct {
	Config    config.Config
	Logger    *log.Logger
	KV        store.KV
	Ledger    *quota.Ledger
	Cache     *cache.Cache
	Client    *analyze.Client
	Service   *analyze.Service
	Extractor *textacquire.Extractor
	Hub       *ws.Hub
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	kv, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	backendURL := cfg.Backend.BaseURL
	if settings, found, serr := store.LoadSettings(context.Background(), kv); serr == nil && found && settings.BackendURL != "" {
		backendURL = settings.BackendURL
	}

	client, err := analyze.NewClient(backendURL, logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	ledger := quota.NewLedger(kv, cfg.Backend.DailyLimit, logger)
	c := cache.New(kv, logger)
	svc := analyze.NewService(client, ledger, c, kv, logger)
	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config:    cfg,
		Logger:    logger,
		KV:        kv,
		Ledger:    ledger,
		Cache:     c,
		Client:    client,
		Service:   svc,
		Extractor: textacquire.NewExtractor(logger),
		Hub:       hub,
	}, nil
}

// openStore prefers redis; when it is not reachable at startup the app
// still comes up on the in-process store in degraded mode.
func openStore(cfg config.Config, logger *log.Logger) (store.KV, error) {
	kv, err := store.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Printf("[Store] falling back to in-memory store | err=%v", err)
		return store.NewMemory(), nil
	}
	return kv, nil
}

func (c *Container) Close() error {
	if c == nil || c.KV == nil {
		return nil
	}
	return c.KV.Close()
}
