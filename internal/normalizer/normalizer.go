package normalizer

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/vora-labs/voradash/internal/models"
)

// Normalizer converts raw heterogeneous API records into canonical
// PoolRecords. Records outside the chain/protocol allow-lists or missing a
// coercible TVL are dropped; this is a hard acceptance filter applied
// before scoring, not a user-adjustable one.
type Normalizer struct {
	chains    map[string]struct{}
	protocols map[string]struct{}
}

func New(chains, protocols []string) *Normalizer {
	n := &Normalizer{
		chains:    make(map[string]struct{}, len(chains)),
		protocols: make(map[string]struct{}, len(protocols)),
	}
	for _, c := range chains {
		n.chains[c] = struct{}{}
	}
	for _, p := range protocols {
		n.protocols[p] = struct{}{}
	}
	return n
}

// Normalize maps each accepted raw record to a PoolRecord with the score
// field unset. Malformed records are dropped silently; only aggregate drop
// counts are logged.
func (n *Normalizer) Normalize(raw []models.RawPoolRecord) []models.PoolRecord {
	pools := make([]models.PoolRecord, 0, len(raw))

	var droppedTvl, droppedAllowlist int

	for _, r := range raw {
		if _, ok := n.chains[r.Chain]; !ok {
			droppedAllowlist++
			continue
		}
		if _, ok := n.protocols[r.Project]; !ok {
			droppedAllowlist++
			continue
		}

		// TVL is the ranking basis: a record without it is unscoreable.
		tvl, ok := coerceFloat(r.TvlUsd)
		if !ok {
			droppedTvl++
			continue
		}

		// APY may be absent in source data and defaults to 0.
		apy, _ := coerceFloat(r.Apy)

		volume, hasVolume := coerceFloat(r.VolumeUsd1d)

		pools = append(pools, models.PoolRecord{
			Symbol:      r.Symbol,
			Chain:       r.Chain,
			Protocol:    r.Project,
			TvlUSD:      tvl,
			APY:         apy,
			VolumeUSD1d: volume,
			HasVolume:   hasVolume,
			ILRisk:      r.IlRisk == "yes",
		})
	}

	if droppedTvl > 0 || droppedAllowlist > 0 {
		log.Debug().
			Int("dropped_missing_tvl", droppedTvl).
			Int("dropped_allowlist", droppedAllowlist).
			Int("accepted", len(pools)).
			Msg("normalized raw pool records")
	}

	return pools
}

// coerceFloat handles the numeric shapes the source actually emits:
// JSON numbers, numeric strings and null.
func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
