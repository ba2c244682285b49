// Package render writes analysis reports as terminal tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/newthinker/scorecard/internal/app"
	"github.com/newthinker/scorecard/internal/scoring"
	"github.com/olekukonko/tablewriter"
)

// Report writes a heading, the breakdown table and the comparison table.
func Report(w io.Writer, r *app.Report) error {
	if _, err := fmt.Fprintf(w, "%s  %s / %.0f\n\n", r.Ticker, FormatScore(r.Score), scoring.MaxScore); err != nil {
		return err
	}
	Breakdown(w, r.Breakdown)
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	Comparison(w, r.Comparison())
	return nil
}

// Breakdown writes one row per criterion.
func Breakdown(w io.Writer, b scoring.Breakdown) {
	table := newTable(w, []string{"Criterion", "Value", "Category", "Points"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	for _, l := range b {
		table.Append([]string{
			l.Name,
			fmt.Sprintf("%.2f", l.Value),
			l.Label,
			fmt.Sprintf("%.1f", l.Points),
		})
	}
	table.SetFooter([]string{"", "", "Total", FormatScore(b.Total())})
	table.Render()
}

// Comparison writes the primary ticker followed by its peers. Peers carry
// their lookup URL since terminals cannot render links.
func Comparison(w io.Writer, rows []app.PeerScore) {
	table := newTable(w, []string{"Ticker", fmt.Sprintf("Score /%.0f", scoring.MaxScore), "Link"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
	for _, row := range rows {
		table.Append([]string{row.Ticker, FormatScore(row.Score), row.URL})
	}
	table.Render()
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, r *app.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatScore rounds a score to two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", scoring.Round2(score))
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	return table
}
