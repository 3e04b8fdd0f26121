package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vora-labs/voradash/internal/models"
)

// Source is the pool data supplier consumed by the refresh pipeline.
type Source interface {
	FetchPools(ctx context.Context) ([]models.RawPoolRecord, error)
}

// LlamaClient fetches yield pool snapshots from the DeFi Llama pools API.
type LlamaClient struct {
	baseURL    string
	retries    int
	httpClient *http.Client
}

func NewLlamaClient(baseURL string, timeout time.Duration, retries int) *LlamaClient {
	if retries < 1 {
		retries = 1
	}
	return &LlamaClient{
		baseURL: baseURL,
		retries: retries,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetches the full pools snapshot. Retries up to the configured attempt
// count; the last error is returned once all attempts fail. Callers treat
// an error as "no data", never as a fatal condition.
func (l *LlamaClient) FetchPools(ctx context.Context) ([]models.RawPoolRecord, error) {
	var lastErr error

	for attempt := 1; attempt <= l.retries; attempt++ {
		pools, err := l.fetchOnce(ctx)
		if err == nil {
			return pools, nil
		}
		lastErr = err

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", l.retries).
			Msg("pools fetch attempt failed")

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("llama pools: all %d attempts failed: %w", l.retries, lastErr)
}

func (l *LlamaClient) fetchOnce(ctx context.Context) ([]models.RawPoolRecord, error) {
	url := l.baseURL + "/pools"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("llama pools: failed to build request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llama pools request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llama pools: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llama pools: failed to read response body: %w", err)
	}

	var raw struct {
		Status string                 `json:"status"`
		Data   []models.RawPoolRecord `json:"data"`
	}

	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("llama pools: failed to parse response: %w", err)
	}

	return raw.Data, nil
}
