package filter

import (
	"strings"

	"github.com/vora-labs/voradash/internal/models"
)

// Apply produces a filtered view of a ranked collection. The input is never
// mutated and its score-descending order is preserved. All supplied
// criteria must hold simultaneously; empty or zero criteria impose no
// restriction. A chain or protocol outside the allow-list simply matches
// nothing.
func Apply(pools []models.PoolRecord, criteria models.FilterCriteria) []models.PoolRecord {
	chains := toSet(criteria.Chains)
	protocols := toSet(criteria.Protocols)
	token1 := strings.ToLower(criteria.Token1)
	token2 := strings.ToLower(criteria.Token2)

	view := make([]models.PoolRecord, 0, len(pools))

	for _, p := range pools {
		if len(chains) > 0 {
			if _, ok := chains[p.Chain]; !ok {
				continue
			}
		}
		if len(protocols) > 0 {
			if _, ok := protocols[p.Protocol]; !ok {
				continue
			}
		}

		// token1 and token2 are independent substring constraints against
		// the same symbol; there is no positional pairing.
		symbol := strings.ToLower(p.Symbol)
		if token1 != "" && !strings.Contains(symbol, token1) {
			continue
		}
		if token2 != "" && !strings.Contains(symbol, token2) {
			continue
		}

		// A zero minimum is "no restriction", so pools with negative APY
		// still pass under default criteria.
		if criteria.MinTvl > 0 && p.TvlUSD < criteria.MinTvl {
			continue
		}
		if criteria.MinApy > 0 && p.APY < criteria.MinApy {
			continue
		}

		view = append(view, p)
	}

	return view
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
