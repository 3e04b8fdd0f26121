package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vora-labs/voradash/config"
	"github.com/vora-labs/voradash/internal/datasource"
	"github.com/vora-labs/voradash/internal/models"
	"github.com/vora-labs/voradash/internal/normalizer"
	"github.com/vora-labs/voradash/internal/portfolio"
	"github.com/vora-labs/voradash/internal/refresher"
	"github.com/vora-labs/voradash/internal/scoring"
)

type stubSource struct {
	pools []models.RawPoolRecord
}

func (s *stubSource) FetchPools(ctx context.Context) ([]models.RawPoolRecord, error) {
	return s.pools, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	stub := &stubSource{pools: []models.RawPoolRecord{
		{Symbol: "ETH-USDC", Chain: "Ethereum", Project: "uniswap-v3", TvlUsd: 1_000_000.0, Apy: 12.0},
		{Symbol: "BTC-ETH", Chain: "Ethereum", Project: "uniswap-v3", TvlUsd: 800_000.0, Apy: 10.0},
		{Symbol: "LINK-ETH", Chain: "Ethereum", Project: "sushiswap", TvlUsd: 600_000.0, Apy: 8.0},
		{Symbol: "MATIC-USDC", Chain: "Polygon", Project: "quickswap-dex", TvlUsd: 500_000.0, Apy: 7.0},
	}}

	cfg := &config.Config{
		Chains:        []string{"Ethereum", "Polygon"},
		Protocols:     []string{"uniswap-v3", "sushiswap", "quickswap-dex"},
		DefaultMinTvl: 800_000,
		DefaultMinApy: 5,
	}

	cache := datasource.NewCachedSource(stub, time.Hour)
	norm := normalizer.New(cfg.Chains, cfg.Protocols)
	engine := scoring.NewEngine(&scoring.ScoreWeights{TVL: 0.3, APY: 0.4})
	refr := refresher.New(cache, norm, engine, time.Hour)
	refr.Refresh(context.Background())

	app := fiber.New()
	SetupRoutes(app, cfg, refr, portfolio.NewStore(), portfolio.NewStore())
	return app
}

func TestGetMeta(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/meta", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(800_000), body["default_min_tvl"])
	assert.Len(t, body["chains"].([]any), 2)
	assert.Len(t, body["protocols"].([]any), 3)
}

func decodeBody(t *testing.T, resp io.Reader) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	return body
}

func TestGetPools_Unfiltered(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/pools", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(4), body["count"])
	assert.Equal(t, false, body["no_data"])

	pools := body["pools"].([]any)
	first := pools[0].(map[string]any)
	assert.Equal(t, "ETH-USDC", first["symbol"])
	assert.Equal(t, "$1,000,000", first["tvl"])
	assert.Equal(t, "12.00%", first["apy"])
}

func TestGetPools_Filtered(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET",
		"/v1/pools?chains=Ethereum&min_tvl=800000&min_apy=5", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(2), body["count"])
}

func TestGetPools_BadNumericParam(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/pools?min_tvl=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPortfolioToggleStatsExport(t *testing.T) {
	app := newTestApp(t)

	toggle := httptest.NewRequest("POST", "/v1/portfolio/toggle", strings.NewReader(
		`{"symbol": "ETH-USDC", "chain": "Ethereum", "protocol": "uniswap-v3", "selected": true}`))
	toggle.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(toggle)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decodeBody(t, resp.Body)["count"])

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/portfolio/stats", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := decodeBody(t, resp.Body)["report"].(map[string]any)
	assert.Equal(t, true, report["has_data"])
	assert.Equal(t, float64(1_000_000), report["mean_tvl"])

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/portfolio/export", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	csv, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(csv), "symbol,chain,protocol,tvl_usd,apy,score")
	assert.Contains(t, string(csv), "ETH-USDC,Ethereum,uniswap-v3")
}

func TestPortfolioToggle_UnknownPool(t *testing.T) {
	app := newTestApp(t)

	toggle := httptest.NewRequest("POST", "/v1/portfolio/toggle", strings.NewReader(
		`{"symbol": "NOPE", "chain": "Ethereum", "protocol": "uniswap-v3", "selected": true}`))
	toggle.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(toggle)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPortfolioReconcile_KeepsOutOfViewSelection(t *testing.T) {
	app := newTestApp(t)

	// Select the Polygon pool first.
	toggle := httptest.NewRequest("POST", "/v1/portfolio/toggle", strings.NewReader(
		`{"symbol": "MATIC-USDC", "chain": "Polygon", "protocol": "quickswap-dex", "selected": true}`))
	toggle.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(toggle)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Reconcile against an Ethereum-only view with one row flagged. The
	// Polygon member is outside the view and must survive.
	reconcile := httptest.NewRequest("POST", "/v1/portfolio/reconcile", strings.NewReader(`{
		"criteria": {"chains": ["Ethereum"]},
		"selected_keys": [{"symbol": "ETH-USDC", "chain": "Ethereum", "protocol": "uniswap-v3"}]
	}`))
	reconcile.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(reconcile)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decodeBody(t, resp.Body)["count"])
}

func TestFavoritesIndependentOfPortfolio(t *testing.T) {
	app := newTestApp(t)

	toggle := httptest.NewRequest("POST", "/v1/favorites/toggle", strings.NewReader(
		`{"symbol": "LINK-ETH", "chain": "Ethereum", "protocol": "sushiswap", "selected": true}`))
	toggle.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(toggle)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/portfolio", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, float64(0), body["count"], "favorites must not leak into the selection")

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/favorites", nil))
	require.NoError(t, err)
	body = decodeBody(t, resp.Body)
	assert.Equal(t, float64(1), body["count"])
}
