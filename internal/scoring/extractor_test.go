package scoring

import (
	"testing"

	"github.com/newthinker/scorecard/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestExtract_Defaults(t *testing.T) {
	m := Extract(core.RawFinancials{})

	assert.Equal(t, MetricSet{AnalystMean: 3}, m)
}

func TestExtract_NilInput(t *testing.T) {
	m := Extract(nil)

	assert.Equal(t, float64(DefaultAnalystMean), m.AnalystMean)
	assert.Zero(t, m.DebtToEquity)
}

func TestExtract_UnitConversion(t *testing.T) {
	raw := core.RawFinancials{
		core.FieldEBITDAMargins:      0.25,
		core.FieldProfitMargins:      0.125,
		core.FieldCurrentRatio:       1.8,
		core.FieldQuickRatio:         1.1,
		core.FieldReturnOnAssets:     0.05,
		core.FieldReturnOnEquity:     0.5,
		core.FieldRecommendationMean: 2.1,
	}

	m := Extract(raw)

	assert.InDelta(t, 25.0, m.ProfitabilityMargin, 1e-9)
	assert.InDelta(t, 12.5, m.NetMargin, 1e-9)
	assert.Equal(t, 1.8, m.CurrentRatio)
	assert.Equal(t, 1.1, m.QuickRatio)
	assert.InDelta(t, 5.0, m.ReturnOnAssets, 1e-9)
	assert.InDelta(t, 50.0, m.ReturnOnEquity, 1e-9)
	assert.Equal(t, 2.1, m.AnalystMean)
}

func TestExtract_DebtToEquity(t *testing.T) {
	tests := []struct {
		name     string
		raw      core.RawFinancials
		expected float64
	}{
		{"percent-like value is scaled", core.RawFinancials{core.FieldDebtToEquity: 150}, 1.5},
		{"small value is scaled", core.RawFinancials{core.FieldDebtToEquity: 0.4}, 0.004},
		{"zero falls back to raw zero", core.RawFinancials{core.FieldDebtToEquity: 0}, 0},
		{"absent falls back to zero", core.RawFinancials{}, 0},
		{"negative equity is scaled", core.RawFinancials{core.FieldDebtToEquity: -80}, -0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Extract(tc.raw).DebtToEquity, 1e-12)
		})
	}
}

func TestMetricSet_Value(t *testing.T) {
	m := MetricSet{
		ProfitabilityMargin: 1,
		NetMargin:           2,
		DebtToEquity:        3,
		CurrentRatio:        4,
		QuickRatio:          5,
		ReturnOnAssets:      6,
		ReturnOnEquity:      7,
		AnalystMean:         8,
	}

	for i, c := range Criteria {
		assert.Equal(t, float64(i+1), m.Value(c), c.Name())
	}
	assert.Zero(t, m.Value(Criterion(99)))
}
