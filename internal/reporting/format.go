package reporting

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/vora-labs/voradash/internal/models"
)

var printer = message.NewPrinter(language.English)

// DisplayRow is one table row as the UI renders it: formatted currency and
// percentage strings plus the per-row selection flags.
type DisplayRow struct {
	Symbol   string `json:"symbol"`
	Chain    string `json:"chain"`
	Protocol string `json:"protocol"`
	Tvl      string `json:"tvl"`
	Apy      string `json:"apy"`
	Score    string `json:"score"`
	Selected bool   `json:"selected"`
	Favorite bool   `json:"favorite"`
}

func NewDisplayRow(r models.PoolRecord, selected, favorite bool) DisplayRow {
	return DisplayRow{
		Symbol:   r.Symbol,
		Chain:    r.Chain,
		Protocol: r.Protocol,
		Tvl:      FormatUSD(r.TvlUSD),
		Apy:      FormatPercent(r.APY),
		Score:    FormatScore(r.Score),
		Selected: selected,
		Favorite: favorite,
	}
}

// FormatUSD renders a dollar amount with grouping, no fraction digits,
// e.g. "$1,000,000".
func FormatUSD(v float64) string {
	return printer.Sprintf("$%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// FormatPercent renders a yield percentage with two fraction digits,
// e.g. "8.25%".
func FormatPercent(v float64) string {
	return printer.Sprintf("%v%%", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatScore renders a composite score with two fraction digits.
func FormatScore(v float64) string {
	return printer.Sprintf("%.2f", v)
}
