package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vora-labs/voradash/api/handlers"
	"github.com/vora-labs/voradash/config"
	"github.com/vora-labs/voradash/internal/portfolio"
	"github.com/vora-labs/voradash/internal/refresher"
)

func SetupRoutes(app *fiber.App, cfg *config.Config, r *refresher.Refresher, selection, favorites *portfolio.Store) {
	metaHandler := handlers.NewMetaHandler(cfg)
	poolsHandler := handlers.NewPoolsHandler(r, selection, favorites)
	selectionHandler := handlers.NewPortfolioHandler("portfolio", selection, r)
	favoritesHandler := handlers.NewPortfolioHandler("favorites", favorites, r)

	v1 := app.Group("/v1")

	v1.Get("/meta", metaHandler.GetMeta)
	v1.Get("/pools", poolsHandler.GetPools)
	v1.Post("/refresh", poolsHandler.Refresh)

	v1.Post("/portfolio/toggle", selectionHandler.Toggle)
	v1.Post("/portfolio/reconcile", selectionHandler.Reconcile)
	v1.Get("/portfolio", selectionHandler.List)
	v1.Get("/portfolio/stats", selectionHandler.Stats)
	v1.Get("/portfolio/export", selectionHandler.Export)

	v1.Post("/favorites/toggle", favoritesHandler.Toggle)
	v1.Get("/favorites", favoritesHandler.List)
	v1.Get("/favorites/export", favoritesHandler.Export)
}
