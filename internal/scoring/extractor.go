package scoring

import "github.com/newthinker/scorecard/internal/core"

// DefaultAnalystMean is the neutral midpoint of the 1-5 analyst scale, used
// when the provider has no consensus.
const DefaultAnalystMean = 3

// MetricSet holds the eight metrics in scoring units. Margins and returns are
// percentages (0-100); debt-to-equity and analyst mean are raw.
type MetricSet struct {
	ProfitabilityMargin float64 `json:"profitability_margin"`
	NetMargin           float64 `json:"net_margin"`
	DebtToEquity        float64 `json:"debt_to_equity"`
	CurrentRatio        float64 `json:"current_ratio"`
	QuickRatio          float64 `json:"quick_ratio"`
	ReturnOnAssets      float64 `json:"return_on_assets"`
	ReturnOnEquity      float64 `json:"return_on_equity"`
	AnalystMean         float64 `json:"analyst_mean"`
}

// Value returns the metric for c.
func (m MetricSet) Value(c Criterion) float64 {
	switch c {
	case ProfitabilityMargin:
		return m.ProfitabilityMargin
	case NetMargin:
		return m.NetMargin
	case DebtToEquity:
		return m.DebtToEquity
	case CurrentRatio:
		return m.CurrentRatio
	case QuickRatio:
		return m.QuickRatio
	case ReturnOnAssets:
		return m.ReturnOnAssets
	case ReturnOnEquity:
		return m.ReturnOnEquity
	case AnalystMean:
		return m.AnalystMean
	}
	return 0
}

// Extract converts provider fields into a MetricSet. Absent fields take their
// defaults; extraction never fails.
//
// The provider reports debt-to-equity either scaled by 100 or as a plain
// ratio. The value is divided by 100, and when that yields exactly zero the
// unscaled value is used instead. A company with no debt therefore scores the
// same as a missing field.
func Extract(raw core.RawFinancials) MetricSet {
	de := raw.Get(core.FieldDebtToEquity, 0) / 100
	if de == 0 {
		de = raw.Get(core.FieldDebtToEquity, 0)
	}

	return MetricSet{
		ProfitabilityMargin: raw.Get(core.FieldEBITDAMargins, 0) * 100,
		NetMargin:           raw.Get(core.FieldProfitMargins, 0) * 100,
		DebtToEquity:        de,
		CurrentRatio:        raw.Get(core.FieldCurrentRatio, 0),
		QuickRatio:          raw.Get(core.FieldQuickRatio, 0),
		ReturnOnAssets:      raw.Get(core.FieldReturnOnAssets, 0) * 100,
		ReturnOnEquity:      raw.Get(core.FieldReturnOnEquity, 0) * 100,
		AnalystMean:         raw.Get(core.FieldRecommendationMean, DefaultAnalystMean),
	}
}
