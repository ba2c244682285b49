package scoring

// Criterion identifies one of the eight scored metrics.
type Criterion int

const (
	ProfitabilityMargin Criterion = iota
	NetMargin
	DebtToEquity
	CurrentRatio
	QuickRatio
	ReturnOnAssets
	ReturnOnEquity
	AnalystMean
)

// Criteria lists every criterion in presentation order.
var Criteria = []Criterion{
	ProfitabilityMargin,
	NetMargin,
	DebtToEquity,
	CurrentRatio,
	QuickRatio,
	ReturnOnAssets,
	ReturnOnEquity,
	AnalystMean,
}

var criterionNames = [...]string{
	ProfitabilityMargin: "EBITDA margin",
	NetMargin:           "Net margin",
	DebtToEquity:        "D/E ratio",
	CurrentRatio:        "Current ratio",
	QuickRatio:          "Quick ratio",
	ReturnOnAssets:      "ROA",
	ReturnOnEquity:      "ROE",
	AnalystMean:         "Analyst mean",
}

var criterionScales = [...]Scale{
	ProfitabilityMargin: ProfitabilityMarginScale,
	NetMargin:           NetMarginScale,
	DebtToEquity:        DebtToEquityScale,
	CurrentRatio:        CurrentRatioScale,
	QuickRatio:          QuickRatioScale,
	ReturnOnAssets:      ReturnOnAssetsScale,
	ReturnOnEquity:      ReturnOnEquityScale,
	AnalystMean:         AnalystMeanScale,
}

// Valid reports whether c is one of the eight criteria.
func (c Criterion) Valid() bool {
	return c >= ProfitabilityMargin && c <= AnalystMean
}

// Name returns the display name of the criterion.
func (c Criterion) Name() string {
	if !c.Valid() {
		return "Unknown"
	}
	return criterionNames[c]
}

func (c Criterion) String() string {
	return c.Name()
}

// Scale returns the band table used to classify the criterion, or a zero
// Scale for an unknown criterion.
func (c Criterion) Scale() Scale {
	if !c.Valid() {
		return Scale{}
	}
	return criterionScales[c]
}

// Classify maps v to a category using the criterion's fixed scale.
// v must be finite. An unknown criterion is Chocolate.
func Classify(c Criterion, v float64) Category {
	if !c.Valid() {
		return Chocolate
	}
	return c.Scale().Classify(v)
}

func ClassifyProfitabilityMargin(pct float64) Category {
	return ProfitabilityMarginScale.Classify(pct)
}

func ClassifyNetMargin(pct float64) Category {
	return NetMarginScale.Classify(pct)
}

// ClassifyDebtToEquity scores a raw ratio; lower is better.
func ClassifyDebtToEquity(ratio float64) Category {
	return DebtToEquityScale.Classify(ratio)
}

func ClassifyCurrentRatio(ratio float64) Category {
	return CurrentRatioScale.Classify(ratio)
}

func ClassifyQuickRatio(ratio float64) Category {
	return QuickRatioScale.Classify(ratio)
}

func ClassifyReturnOnAssets(pct float64) Category {
	return ReturnOnAssetsScale.Classify(pct)
}

func ClassifyReturnOnEquity(pct float64) Category {
	return ReturnOnEquityScale.Classify(pct)
}

// ClassifyAnalystMean scores a 1 (strong buy) to 5 (sell) consensus; lower is better.
func ClassifyAnalystMean(mean float64) Category {
	return AnalystMeanScale.Classify(mean)
}
