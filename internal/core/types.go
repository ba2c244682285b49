package core

import "strings"

// Provider field identifiers for the eight scored ratios.
const (
	FieldEBITDAMargins      = "ebitdaMargins"
	FieldProfitMargins      = "profitMargins"
	FieldDebtToEquity       = "debtToEquity"
	FieldCurrentRatio       = "currentRatio"
	FieldQuickRatio         = "quickRatio"
	FieldReturnOnAssets     = "returnOnAssets"
	FieldReturnOnEquity     = "returnOnEquity"
	FieldRecommendationMean = "recommendationMean"
)

// Fields lists every provider field the scorer reads.
var Fields = []string{
	FieldEBITDAMargins,
	FieldProfitMargins,
	FieldDebtToEquity,
	FieldCurrentRatio,
	FieldQuickRatio,
	FieldReturnOnAssets,
	FieldReturnOnEquity,
	FieldRecommendationMean,
}

// RawFinancials maps provider field names to values. A missing key means the
// provider did not report the field.
type RawFinancials map[string]float64

// Get returns the value for key, or def when the key is absent.
func (r RawFinancials) Get(key string, def float64) float64 {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}

// NormalizeTicker trims and uppercases a ticker symbol.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", ErrInvalidTicker
	}
	return t, nil
}
