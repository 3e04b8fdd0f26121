package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vora-labs/voradash/api"
	"github.com/vora-labs/voradash/config"
	"github.com/vora-labs/voradash/internal/datasource"
	"github.com/vora-labs/voradash/internal/normalizer"
	"github.com/vora-labs/voradash/internal/portfolio"
	"github.com/vora-labs/voradash/internal/refresher"
	"github.com/vora-labs/voradash/internal/scoring"
)

func main() {
	// ── 1. Logger setup
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// ── 2. Root context setup
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── 3. Config
	cfg := config.Load()
	log.Info().Msg("config loaded")

	// ── 4. Data source with snapshot cache
	llama := datasource.NewLlamaClient(cfg.PoolsAPIURL, cfg.FetchTimeout, cfg.FetchRetries)
	source := datasource.NewCachedSource(llama, cfg.RefreshInterval)
	log.Info().Str("url", cfg.PoolsAPIURL).Msg("pool data source initialized")

	// ── 5. Pipeline: normalizer + scoring engine + refresher
	norm := normalizer.New(cfg.Chains, cfg.Protocols)
	engine := scoring.NewEngine(nil)
	refr := refresher.New(source, norm, engine, cfg.RefreshInterval)

	refr.Start(ctx)
	defer refr.Stop()

	// ── 6. Portfolio stores (selection + favorites)
	selection := portfolio.NewStore()
	favorites := portfolio.NewStore()

	// ── 7. Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Voradash",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// ── 8. Routes
	api.SetupRoutes(app, cfg, refr, selection, favorites)

	// ── 9. Graceful shutdown listener
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
	}()

	// ── 10. Start server (blocking)
	log.Info().Str("port", cfg.AppPort).Msg("starting server")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
