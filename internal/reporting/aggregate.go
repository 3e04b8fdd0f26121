package reporting

import "github.com/vora-labs/voradash/internal/models"

// Aggregate computes mean TVL, APY and score over a record subset. An empty
// subset yields the no-data sentinel (HasData false, zero means) instead of
// a division by zero.
func Aggregate(records []models.PoolRecord) models.AggregateReport {
	if len(records) == 0 {
		return models.AggregateReport{}
	}

	var sumTvl, sumApy, sumScore float64
	for _, r := range records {
		sumTvl += r.TvlUSD
		sumApy += r.APY
		sumScore += r.Score
	}

	n := float64(len(records))
	return models.AggregateReport{
		Count:     len(records),
		HasData:   true,
		MeanTvl:   sumTvl / n,
		MeanApy:   sumApy / n,
		MeanScore: sumScore / n,
	}
}
