package reporting

import (
	"fmt"
	"strings"

	"github.com/vora-labs/voradash/internal/models"
)

// RenderCSV renders pool records as delimited text for export: a header row
// plus one row per record over the display fields.
func RenderCSV(records []models.PoolRecord) string {
	var sb strings.Builder

	sb.WriteString("symbol,chain,protocol,tvl_usd,apy,score\n")

	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%.2f,%.2f,%.4f\n",
			r.Symbol,
			r.Chain,
			r.Protocol,
			r.TvlUSD,
			r.APY,
			r.Score,
		))
	}

	return sb.String()
}
