package models

// PoolKey identifies a pool across snapshots. TVL, APY and score change
// between refreshes and never affect identity.
type PoolKey struct {
	Symbol   string `json:"symbol"`
	Chain    string `json:"chain"`
	Protocol string `json:"protocol"`
}

// RawPoolRecord matches one entry of the `data` array returned by the
// yields API. Numeric fields are decoded as `any` because the source mixes
// numbers, strings and nulls; the normalizer coerces them.
type RawPoolRecord struct {
	Symbol      string `json:"symbol"`
	Chain       string `json:"chain"`
	Project     string `json:"project"`
	TvlUsd      any    `json:"tvlUsd"`
	Apy         any    `json:"apy"`
	VolumeUsd1d any    `json:"volumeUsd1d"`
	IlRisk      string `json:"ilRisk"`
}

// PoolRecord is one normalized liquidity pool snapshot.
type PoolRecord struct {
	Symbol      string  `json:"symbol"`
	Chain       string  `json:"chain"`
	Protocol    string  `json:"protocol"`
	TvlUSD      float64 `json:"tvl_usd"`
	APY         float64 `json:"apy"`
	VolumeUSD1d float64 `json:"volume_usd_1d"`
	HasVolume   bool    `json:"-"` // volumeUsd1d was present in the source record
	ILRisk      bool    `json:"il_risk"`
	Score       float64 `json:"score"` // always derived, never sourced
}

func (p PoolRecord) Key() PoolKey {
	return PoolKey{Symbol: p.Symbol, Chain: p.Chain, Protocol: p.Protocol}
}

// FilterCriteria is a conjunctive set of independently optional predicates.
// Empty slices and zero values impose no restriction.
type FilterCriteria struct {
	Chains    []string `json:"chains"`
	Protocols []string `json:"protocols"`
	Token1    string   `json:"token1"`
	Token2    string   `json:"token2"`
	MinTvl    float64  `json:"min_tvl"`
	MinApy    float64  `json:"min_apy"`
}

// AggregateReport holds summary statistics over a record subset.
// HasData is false for an empty subset; the means are zero in that case
// rather than NaN.
type AggregateReport struct {
	Count     int     `json:"count"`
	HasData   bool    `json:"has_data"`
	MeanTvl   float64 `json:"mean_tvl"`
	MeanApy   float64 `json:"mean_apy"`
	MeanScore float64 `json:"mean_score"`
}
