package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/vora-labs/voradash/config"
)

// MetaHandler exposes the filter dropdown options and default filter
// values the UI renders its controls from.
type MetaHandler struct {
	cfg *config.Config
}

func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

// Handles GET /meta.
func (h *MetaHandler) GetMeta(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"chains":          h.cfg.Chains,
		"protocols":       h.cfg.Protocols,
		"default_min_tvl": h.cfg.DefaultMinTvl,
		"default_min_apy": h.cfg.DefaultMinApy,
	})
}
