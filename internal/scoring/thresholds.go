package scoring

// Direction tells a band table which side of a bound is the worse one.
type Direction int

const (
	// HigherIsBetter assigns the band whose bound the value is strictly below.
	HigherIsBetter Direction = iota
	// LowerIsBetter assigns the band whose bound the value is strictly above.
	LowerIsBetter
)

// Band pairs a bound with the category assigned on the worse side of it.
type Band struct {
	Bound    float64
	Category Category
}

// Scale is an ordered band table. Bands are checked worst first; a value that
// falls through every band is Gold.
type Scale struct {
	Direction Direction
	Bands     []Band
}

// Classify returns the category for v.
func (s Scale) Classify(v float64) Category {
	for _, b := range s.Bands {
		switch s.Direction {
		case HigherIsBetter:
			if v < b.Bound {
				return b.Category
			}
		case LowerIsBetter:
			if v > b.Bound {
				return b.Category
			}
		}
	}
	return Gold
}

func higher(b0, b1, b2 float64) Scale {
	return Scale{
		Direction: HigherIsBetter,
		Bands:     []Band{{b0, Chocolate}, {b1, Bronze}, {b2, Silver}},
	}
}

func lower(b0, b1, b2 float64) Scale {
	return Scale{
		Direction: LowerIsBetter,
		Bands:     []Band{{b0, Chocolate}, {b1, Bronze}, {b2, Silver}},
	}
}

// Fixed scales. Percent metrics are on the 0-100 range.
var (
	ProfitabilityMarginScale = higher(10, 20, 35)
	NetMarginScale           = higher(8, 15, 25)
	DebtToEquityScale        = lower(1, 0.5, 0.25)
	CurrentRatioScale        = higher(1.2, 1.5, 3)
	QuickRatioScale          = higher(1, 1.5, 3)
	ReturnOnAssetsScale      = higher(5, 8, 12)
	ReturnOnEquityScale      = higher(10, 15, 25)
	AnalystMeanScale         = lower(3.5, 2.5, 1.5)
)
