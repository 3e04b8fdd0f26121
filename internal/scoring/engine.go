package scoring

import (
	"sort"

	"github.com/vora-labs/voradash/internal/models"
)

// ScoreWeights are the sub-metric weights of the composite Vora score.
// FeeEfficiency, ILProtection and TokenQuality have no data source yet and
// stay zero-weighted stubs so that scoring is deterministic for identical
// input.
type ScoreWeights struct {
	TVL           float64 `json:"tvl"`
	APY           float64 `json:"apy"`
	Volume        float64 `json:"volume"`
	Risk          float64 `json:"risk"` // negative: IL-flagged pools score lower
	FeeEfficiency float64 `json:"fee_efficiency"`
	ILProtection  float64 `json:"il_protection"`
	TokenQuality  float64 `json:"token_quality"`
}

// FullWeights applies when every record in the snapshot reports volume data.
func FullWeights() ScoreWeights {
	return ScoreWeights{TVL: 0.30, APY: 0.40, Volume: 0.20, Risk: -0.10}
}

// DegradedWeights applies when volume data is incomplete.
func DegradedWeights() ScoreWeights {
	return ScoreWeights{TVL: 0.25, APY: 0.20}
}

// Engine computes the composite score over a whole accepted collection in
// one pass; TVL, APY and volume sub-scores are min-max normalized against
// the collection's observed range.
type Engine struct {
	weights *ScoreWeights
}

// NewEngine creates an engine. A nil weights argument selects FullWeights
// or DegradedWeights per snapshot, depending on volume availability.
func NewEngine(weights *ScoreWeights) *Engine {
	return &Engine{weights: weights}
}

// Rank scores every record in place and returns the collection sorted by
// score descending. Ties keep their original collection order. An empty
// input yields an empty output with no normalization attempted.
func (e *Engine) Rank(pools []models.PoolRecord) []models.PoolRecord {
	if len(pools) == 0 {
		return pools
	}

	weights := e.weightsFor(pools)

	normTvl := minMaxNormalize(pools, func(p models.PoolRecord) float64 { return p.TvlUSD })
	normApy := minMaxNormalize(pools, func(p models.PoolRecord) float64 { return p.APY })
	normVol := minMaxNormalize(pools, func(p models.PoolRecord) float64 { return p.VolumeUSD1d })

	for i := range pools {
		risk := 0.0
		if pools[i].ILRisk {
			risk = 1.0
		}

		pools[i].Score = weights.TVL*normTvl[i] +
			weights.APY*normApy[i] +
			weights.Volume*normVol[i] +
			weights.Risk*risk
	}

	rankPools(pools)
	return pools
}

func (e *Engine) weightsFor(pools []models.PoolRecord) ScoreWeights {
	if e.weights != nil {
		return *e.weights
	}
	for _, p := range pools {
		if !p.HasVolume {
			return DegradedWeights()
		}
	}
	return FullWeights()
}

// Sorts pools in place, highest score first. The sort is stable so equal
// scores keep snapshot arrival order.
func rankPools(pools []models.PoolRecord) {
	sort.SliceStable(pools, func(i, j int) bool {
		return pools[i].Score > pools[j].Score
	})
}

// minMaxNormalize rescales a metric to [0,1] over the collection. A
// zero-range metric normalizes to 0 for every record to avoid division by
// zero and NaN propagation.
func minMaxNormalize(pools []models.PoolRecord, metric func(models.PoolRecord) float64) []float64 {
	minV, maxV := metric(pools[0]), metric(pools[0])
	for _, p := range pools[1:] {
		v := metric(p)
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	norms := make([]float64, len(pools))
	if maxV == minV {
		return norms
	}

	for i, p := range pools {
		norms[i] = (metric(p) - minV) / (maxV - minV)
	}
	return norms
}
