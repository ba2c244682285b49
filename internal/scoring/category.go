// Package scoring classifies financial ratios into tiers and sums the tier
// points into a final health score. It performs no I/O.
package scoring

import "math"

// Category is the tier assigned to a single metric, worst to best.
type Category int

const (
	Chocolate Category = iota
	Bronze
	Silver
	Gold
)

var categoryLabels = [...]string{
	Chocolate: "Chocolate",
	Bronze:    "Bronze",
	Silver:    "Silver",
	Gold:      "Gold",
}

var categoryPoints = [...]float64{
	Chocolate: 0.6,
	Bronze:    1.3,
	Silver:    1.9,
	Gold:      2.5,
}

// Score bounds for eight criteria.
const (
	MinScore = 8 * 0.6
	MaxScore = 8 * 2.5
)

// Valid reports whether c is one of the four defined tiers.
func (c Category) Valid() bool {
	return c >= Chocolate && c <= Gold
}

// Label returns the display name of the tier.
func (c Category) Label() string {
	if !c.Valid() {
		return "Unknown"
	}
	return categoryLabels[c]
}

// Points returns the score contribution of the tier.
func (c Category) Points() float64 {
	if !c.Valid() {
		return 0
	}
	return categoryPoints[c]
}

func (c Category) String() string {
	return c.Label()
}

// Round2 rounds v to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
