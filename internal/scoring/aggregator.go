package scoring

// Line is one criterion's row in a breakdown.
type Line struct {
	Criterion Criterion `json:"-"`
	Name      string    `json:"criterion"`
	Value     float64   `json:"value"`
	Category  Category  `json:"category"`
	Label     string    `json:"label"`
	Points    float64   `json:"points"`
}

// Breakdown lists every criterion's result in presentation order.
type Breakdown []Line

// Total sums the points of every line.
func (b Breakdown) Total() float64 {
	var total float64
	for _, l := range b {
		total += l.Points
	}
	return total
}

// Aggregate classifies each metric and returns the breakdown with the final
// score. The score is not rounded.
func Aggregate(m MetricSet) (Breakdown, float64) {
	b := make(Breakdown, 0, len(Criteria))
	for _, c := range Criteria {
		v := m.Value(c)
		cat := Classify(c, v)
		b = append(b, Line{
			Criterion: c,
			Name:      c.Name(),
			Value:     v,
			Category:  cat,
			Label:     cat.Label(),
			Points:    cat.Points(),
		})
	}
	return b, b.Total()
}

// Score returns only the final score for m.
func Score(m MetricSet) float64 {
	_, total := Aggregate(m)
	return total
}
