package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/vora-labs/voradash/internal/filter"
	"github.com/vora-labs/voradash/internal/models"
	"github.com/vora-labs/voradash/internal/portfolio"
	"github.com/vora-labs/voradash/internal/refresher"
	"github.com/vora-labs/voradash/internal/reporting"
)

// PortfolioHandler serves one tracked pool set. The service registers it
// twice: once for the selection and once for favorites.
type PortfolioHandler struct {
	name      string
	store     *portfolio.Store
	refresher *refresher.Refresher
}

func NewPortfolioHandler(name string, store *portfolio.Store, r *refresher.Refresher) *PortfolioHandler {
	return &PortfolioHandler{name: name, store: store, refresher: r}
}

type toggleRequest struct {
	Symbol   string `json:"symbol"`
	Chain    string `json:"chain"`
	Protocol string `json:"protocol"`
	Selected bool   `json:"selected"`
}

// Handles POST toggle events from the UI: one row key plus a boolean.
func (h *PortfolioHandler) Toggle(c fiber.Ctx) error {
	var req toggleRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid toggle request body",
		})
	}

	if req.Symbol == "" || req.Chain == "" || req.Protocol == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "symbol, chain and protocol are required",
		})
	}

	key := models.PoolKey{Symbol: req.Symbol, Chain: req.Chain, Protocol: req.Protocol}

	record, ok := h.resolve(key)
	if !ok {
		if !req.Selected {
			// Removing an unknown key is a no-op, not an error
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"count": h.store.Len()})
		}
		log.Warn().
			Str("symbol", key.Symbol).
			Str("chain", key.Chain).
			Str("protocol", key.Protocol).
			Msg("toggle for pool not present in any snapshot")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "pool not found in current snapshot",
		})
	}

	h.store.Toggle(record, req.Selected)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": h.store.Len(),
	})
}

type reconcileRequest struct {
	Criteria     models.FilterCriteria `json:"criteria"`
	SelectedKeys []models.PoolKey      `json:"selected_keys"`
}

// Handles POST reconcile: the UI sends its current filter criteria and the
// keys flagged selected in the displayed view. Members outside that view
// are left untouched.
func (h *PortfolioHandler) Reconcile(c fiber.Ctx) error {
	var req reconcileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reconcile request body",
		})
	}

	view := filter.Apply(h.refresher.Ranked(), req.Criteria)

	flags := make(map[models.PoolKey]bool, len(req.SelectedKeys))
	for _, key := range req.SelectedKeys {
		flags[key] = true
	}

	h.store.ReconcileAgainstView(view, flags)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": h.store.Len(),
	})
}

// Handles GET list: store contents as display rows, score descending.
func (h *PortfolioHandler) List(c fiber.Ctx) error {
	records := h.store.Snapshot()

	rows := make([]reporting.DisplayRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, reporting.NewDisplayRow(r, true, false))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(rows),
		"pools": rows,
	})
}

// Handles GET stats: aggregate means over the store contents.
func (h *PortfolioHandler) Stats(c fiber.Ctx) error {
	report := reporting.Aggregate(h.store.Snapshot())

	body := fiber.Map{"report": report}
	if report.HasData {
		body["display"] = fiber.Map{
			"mean_tvl":   reporting.FormatUSD(report.MeanTvl),
			"mean_apy":   reporting.FormatPercent(report.MeanApy),
			"mean_score": reporting.FormatScore(report.MeanScore),
		}
	}

	return c.Status(fiber.StatusOK).JSON(body)
}

// Handles GET export: store contents as downloadable delimited text.
func (h *PortfolioHandler) Export(c fiber.Ctx) error {
	csv := reporting.RenderCSV(h.store.Snapshot())

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+h.name+`.csv"`)
	return c.SendString(csv)
}

// resolve finds the freshest record for a key: the latest snapshot first,
// then the store itself, so members that dropped out of the snapshot can
// still be toggled off and back on with their last known values.
func (h *PortfolioHandler) resolve(key models.PoolKey) (models.PoolRecord, bool) {
	for _, p := range h.refresher.Ranked() {
		if p.Key() == key {
			return p, true
		}
	}
	return h.store.Get(key)
}
