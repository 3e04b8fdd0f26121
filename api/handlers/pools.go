package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/vora-labs/voradash/internal/filter"
	"github.com/vora-labs/voradash/internal/models"
	"github.com/vora-labs/voradash/internal/portfolio"
	"github.com/vora-labs/voradash/internal/refresher"
	"github.com/vora-labs/voradash/internal/reporting"
)

type PoolsHandler struct {
	refresher *refresher.Refresher
	selection *portfolio.Store
	favorites *portfolio.Store
}

func NewPoolsHandler(r *refresher.Refresher, selection, favorites *portfolio.Store) *PoolsHandler {
	return &PoolsHandler{refresher: r, selection: selection, favorites: favorites}
}

// Handles GET /pools. Filter criteria come from query parameters; the
// response preserves score-descending order and flags rows that are in the
// selection or favorites.
func (h *PoolsHandler) GetPools(c fiber.Ctx) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ranked := h.refresher.Ranked()
	view := filter.Apply(ranked, criteria)

	rows := make([]reporting.DisplayRow, 0, len(view))
	for _, p := range view {
		key := p.Key()
		rows = append(rows, reporting.NewDisplayRow(p,
			h.selection.Contains(key),
			h.favorites.Contains(key),
		))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count":   len(rows),
		"no_data": len(ranked) == 0,
		"pools":   rows,
	})
}

// Handles POST /refresh: drops the snapshot cache and reruns the pipeline.
func (h *PoolsHandler) Refresh(c fiber.Ctx) error {
	log.Info().Msg("explicit refresh requested")
	h.refresher.Refresh(c.Context())

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"pools": len(h.refresher.Ranked()),
	})
}

func criteriaFromQuery(c fiber.Ctx) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{
		Chains:    splitList(c.Query("chains")),
		Protocols: splitList(c.Query("protocols")),
		Token1:    c.Query("token1"),
		Token2:    c.Query("token2"),
	}

	var err error
	if criteria.MinTvl, err = queryFloat(c, "min_tvl"); err != nil {
		return criteria, err
	}
	if criteria.MinApy, err = queryFloat(c, "min_apy"); err != nil {
		return criteria, err
	}
	return criteria, nil
}

func queryFloat(c fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, name+" must be numeric")
	}
	return v, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
